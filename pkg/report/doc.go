// Package report renders validation results as text or JSON.
package report
