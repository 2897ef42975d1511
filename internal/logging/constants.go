package logging

// Field keys used across the pipeline, so log queries can rely on them.
const (
	FieldRunID      = "run_id"
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"

	// extraction
	FieldPage     = "page"
	FieldTable    = "table"
	FieldStrategy = "strategy"
	FieldBankType = "bank_type"

	// processing
	FieldIndex      = "index"
	FieldRawValue   = "raw_value"
	FieldReason     = "reason"
	FieldStatus     = "status"
	FieldCount      = "count"
	FieldErrorCount = "error_count"

	// export
	FieldDelimiter = "delimiter"
	FieldSheet     = "sheet"
)
