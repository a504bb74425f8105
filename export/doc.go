// Package export writes a formatted report to delimited text, JSON, HTML,
// XLSX or PDF.
//
// An [Exporter] is configured with a [Config] and writes to any io.Writer:
//
//	exp := export.NewExporterWithConfig(export.CSVConfig())
//	err := exp.ExportToFile(report, "final_output.csv")
//
// [ForPath] selects the configuration from an output file extension.
package export
