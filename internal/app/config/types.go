package config

type (
	InternalConfig struct {
		App   App
		X12   X12
		Queue Queue
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		EndpointPrefix             string
		PartnerAPIKeys             map[string]string
		ShutdownTimeout            int
		MaxRequestsPerMinute       int
		RequestBodyLimitInMegabyte int
	}

	// X12 identifies this service on outbound interchanges.
	X12 struct {
		SenderID   string
		ReceiverID string
	}

	Queue struct {
		TransactionEventQueue string
		DeadLetterQueue       string
	}
)
