// Package testutil contains helper builders and utilities used across tests
// to reduce boilerplate when constructing questions, answers and result
// files. They are not intended for production usage.
package testutil
