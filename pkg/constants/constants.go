package constants

// Message and embed length limits for Discord
const (
	// MaxDiscordMessageLength is Discord's message character limit
	MaxDiscordMessageLength = 2000
	// MaxEmbedDescriptionLength is Discord's embed description character limit
	MaxEmbedDescriptionLength = 4096
)

// Secret masking configuration for log output
const (
	// MinSecretLengthForMasking is the minimum secret length before partial masking is used
	MinSecretLengthForMasking = 12
	// SecretMaskPrefixLength is the number of leading characters kept visible
	SecretMaskPrefixLength = 4
	// SecretMaskSuffixLength is the number of trailing characters kept visible
	SecretMaskSuffixLength = 4
)
