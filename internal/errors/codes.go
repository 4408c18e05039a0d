package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeResourceNotFound Code = "RESOURCE_NOT_FOUND"
	CodeDeviceRejected   Code = "DEVICE_REJECTED"
	CodeSessionError     Code = "SESSION_ERROR"
	CodeBackupError      Code = "BACKUP_ERROR"
)

func (c Code) String() string {
	return string(c)
}
