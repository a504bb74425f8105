// Package classify turns raw table grids into user and employee records.
//
// Two strategies are provided and callers pick one:
//
//   - [ScanGrid] looks for the user_id and emp_company marker rows, splits
//     the grid into a user block and an employee block, and builds a
//     [Table] per block from its header row. [Identify] then decides
//     whether a table holds users, employees, or neither.
//   - [ScanRows] ignores headers and classifies each row by its shape: six
//     cells led by a digit string is a user; six cells with text at 0, 2, 4
//     and nulls at 1, 3, 5 is an employee.
//
// Building a table from a block can fail (for example when data rows are
// wider than the header). Such failures are reported as an [Outcome] whose
// Err is a *[TableError]; scanning continues with the next block.
package classify
