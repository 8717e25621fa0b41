package codes

// Every code is unique across the project so that a code seen in a log
// or response can be traced back to exactly one place.
const (
	// 101xxx - http responses
	RES_UNKNOWN_ROUTE  = 101_001
	RES_INVALID_JSON   = 101_002
	RES_VALIDATION     = 101_003
	RES_SERVER_ERROR   = 101_004
	RES_NO_TOKEN       = 101_005
	RES_BARCODE_FAILED = 101_006

	// 102xxx - input validation
	VAL_REQUIRED      = 102_001
	VAL_STRING_TYPE   = 102_002
	VAL_STRING_LENGTH = 102_003

	// 103xxx - startup / configuration
	ERR_READ_CONFIG              = 103_001
	ERR_PARSE_CONFIG             = 103_002
	ERR_INVALID_STORAGE_TYPE     = 103_003
	ERR_INVALID_LOG_LEVEL        = 103_004
	ERR_INVALID_LOG_FORMAT       = 103_005
	ERR_INVALID_BARCODE_RECOVERY = 103_006
	ERR_STORAGE_PATH_REQUIRED    = 103_007
	ERR_STORAGE_URL_REQUIRED     = 103_008
	ERR_INVALID_BARCODE_TYPE     = 103_009
)
