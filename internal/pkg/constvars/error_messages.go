package constvars

// Validation messages for clients, mapped by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"numeric":  "must be a number",
}

// Tags that require parameter substitution.
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientMalformedEDI                  = "the EDI payload is malformed"
	ErrClientWrongTransactionDirection     = "the transaction type does not match the requested direction"
	ErrClientMissingRequiredField          = "a required field is missing from the transaction"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientUnknownResourceType           = "unsupported FHIR resource type"
	ErrClientPriorAuthNotFound             = "no pending prior authorization request matches the trace number"
	ErrClientDuplicateInterchange          = "this interchange was already submitted"
	ErrClientTransactionNotFound           = "no transaction matches the request id"
)

// Error messages for developers
const (
	ErrDevValidationFailed         = "request validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevEDIDecodeFailed          = "failed to decode EDI payload"
	ErrDevEDIEncodeFailed          = "failed to encode EDI payload"
	ErrDevMappingFailed            = "failed to map transaction to FHIR"
	ErrDevWrongDirection           = "transaction type does not match requested direction"
	ErrDevUnknownResourceType      = "no rule list registered for resource type"
	ErrDevPriorAuthNotFound        = "no cached prior authorization request for trace number: %s"
	ErrDevDuplicateInterchange     = "duplicate interchange control number: %s"
	ErrDevTransactionNotFound      = "no archived transaction for request id: %s"
	ErrDevInvalidPartnerKey        = "missing or unknown partner api key"
	ErrDevRedisSet                 = "failed to set redis key"
	ErrDevRedisGet                 = "failed to get redis key: %s"
	ErrDevRedisDelete              = "failed to delete redis key"
	ErrDevRedisIncrement           = "failed to increment redis key"
	ErrDevDBFailedToInsertDocument = "failed to insert document to DB"
	ErrDevDBFailedToFindDocument   = "failed to find document in DB"
	ErrDevDBFailedToIterateDocs    = "failed to iterate DB documents"
	ErrDevQueuePublishFailed       = "failed to publish message to queue"
	ErrDevStoragePutFailed         = "failed to store object"
	ErrDevStorageGetFailed         = "failed to fetch object"
)
