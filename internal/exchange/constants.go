package exchange

// Audit action recorded for confirmed conversions
const ActionConverted = "converted"

// Log messages
const (
	LogMsgConversionQuoted    = "Conversion quoted"
	LogMsgConversionConfirmed = "Conversion confirmed"
	LogMsgConversionRejected  = "Conversion rejected"
	LogMsgRatesReplaced       = "Exchange rate table replaced"
)
