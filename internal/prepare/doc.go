// Package prepare reshapes and augments record tables around suppression.
//
// Everything here is a single, non-recursive pass: pivoting long data to
// one column per category and appending row totals before suppression,
// and appending percentages to the rendered table afterwards, masked
// wherever an operand carries the mask symbol or the numerator is small.
// Complementary suppression of the count columns is left to the suppress
// package.
package prepare
