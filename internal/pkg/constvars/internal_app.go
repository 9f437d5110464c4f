package constvars

import "time"

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PARTNER_ID_KEY           ContextKey = "partner_id"
)

const (
	ResponseUnknown = "unknown"
)

const (
	MongoCollectionTransactionLogs = "transaction_logs"
)

const (
	RedisKeyEligibilityResponse = "eligibility:response:%s"
	RedisKeyRemittance          = "remittance:%s"
	RedisKeyPriorAuthRequest    = "priorauth:request:%s"
	RedisKeyPriorAuthResponse   = "priorauth:response:%s"
	RedisKeyPriorAuthTimeline   = "priorauth:timeline:%s"
	RedisKeyClaimInterchange    = "claims:icn:%s"
	RedisKeyClaimDuplicateCount = "claims:duplicates"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Cache lifetimes. Prior-auth entries live long enough to cover the longest
// decision SLA (7 days) plus remediation slack.
const (
	RedisTTLEligibilityResponse = 24 * time.Hour
	RedisTTLRemittance          = 24 * time.Hour
	RedisTTLPriorAuth           = 14 * 24 * time.Hour
	RedisTTLInterchangeGuard    = 24 * time.Hour
)

// PresignedRawURLExpiry bounds how long a shared raw-interchange link stays
// valid.
const PresignedRawURLExpiry = 15 * time.Minute
