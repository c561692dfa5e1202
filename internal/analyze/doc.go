// Package analyze computes descriptive statistics and pairwise correlation
// over a collected dataset.
//
// The analyzer produces one ColumnSummary per numeric column (count, mean,
// sample standard deviation, five-number summary) and a full Pearson
// correlation matrix across the numeric columns. Columns with no rows are
// excluded from both. A dataset with zero numeric columns is an error
// because correlation is undefined over nothing.
package analyze
