package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldCount       = "count"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldBank        = "bank"
	FieldSource      = "source"
	FieldReason      = "reason"
	FieldLine        = "line"
	FieldLineNumber  = "line_number"
	FieldStrategy    = "strategy"
	FieldKeyword     = "keyword"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldDelimiter   = "delimiter"
	FieldUploadID    = "upload_id"
	FieldPages       = "pages"
	FieldChannel     = "channel"
	FieldRecipient   = "recipient"
)
