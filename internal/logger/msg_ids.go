package logger

// Most non-error log messages are given a message ID that can be used to set
// the log level for that message. Errors do not get a message ID because you
// cannot turn errors into non-errors (otherwise the parse would incorrectly
// report success). Some internal log messages do not get a message ID
// because they are part of verbose and/or internal debugging output. These
// messages use "MsgID_None" instead.
type MsgID = uint8

const (
	MsgID_None MsgID = iota

	// Lexical / tokenizer
	MsgID_CSS_InvalidEscape
	MsgID_CSS_UnterminatedString
	MsgID_CSS_UnterminatedURL
	MsgID_CSS_UnterminatedComment

	// Parser core / recovery
	MsgID_CSS_CSSSyntaxError
	MsgID_CSS_UnexpectedToken
	MsgID_CSS_UnexpectedIdent
	MsgID_CSS_UnexpectedAtRule
	MsgID_CSS_UnexpectedFunction
	MsgID_CSS_UnexpectedDimension
	MsgID_CSS_UnexpectedPseudoClass
	MsgID_CSS_UnexpectedPseudoElement
	MsgID_CSS_UnexpectedDelim
	MsgID_CSS_MissingAtRulePrelude
	MsgID_CSS_MissingAtRuleBlock
	MsgID_CSS_BadDeclaration

	// At-rules
	MsgID_CSS_InvalidAtCharset
	MsgID_CSS_InvalidAtImport
	MsgID_CSS_InvalidAtLayer
	MsgID_CSS_UnsupportedAtCharset
	MsgID_CSS_UnsupportedAtNamespace
	MsgID_CSS_ReservedKeyframeName
	MsgID_CSS_InvalidRangedFeature

	// Values
	MsgID_CSS_InvalidCalc
	MsgID_CSS_NumberOutOfBounds
	MsgID_CSS_ExpectedInteger
	MsgID_CSS_ExpectedFloat
	MsgID_CSS_ExpectedSigned
	MsgID_CSS_ExpectedUnsigned
	MsgID_CSS_ExpectedZero
	MsgID_CSS_ColorHexWrongLength
	MsgID_CSS_ColorChannelOrdering
	MsgID_CSS_UnsupportedCSSProperty

	// Selectors
	MsgID_CSS_UnsupportedCSSNesting
	MsgID_CSS_InvalidSelector

	MsgID_END // Keep this at the end (used only for tests)
)

func StringToMsgIDs(str string, logLevel LogLevel, overrides map[MsgID]LogLevel) {
	switch str {
	case "invalid-escape":
		overrides[MsgID_CSS_InvalidEscape] = logLevel
	case "unterminated-string":
		overrides[MsgID_CSS_UnterminatedString] = logLevel
	case "unterminated-url":
		overrides[MsgID_CSS_UnterminatedURL] = logLevel
	case "unterminated-comment":
		overrides[MsgID_CSS_UnterminatedComment] = logLevel
	case "css-syntax-error":
		overrides[MsgID_CSS_CSSSyntaxError] = logLevel
	case "unexpected-token":
		overrides[MsgID_CSS_UnexpectedToken] = logLevel
	case "unexpected-ident":
		overrides[MsgID_CSS_UnexpectedIdent] = logLevel
	case "unexpected-at-rule":
		overrides[MsgID_CSS_UnexpectedAtRule] = logLevel
	case "unexpected-function":
		overrides[MsgID_CSS_UnexpectedFunction] = logLevel
	case "unexpected-dimension":
		overrides[MsgID_CSS_UnexpectedDimension] = logLevel
	case "unexpected-pseudo-class":
		overrides[MsgID_CSS_UnexpectedPseudoClass] = logLevel
	case "unexpected-pseudo-element":
		overrides[MsgID_CSS_UnexpectedPseudoElement] = logLevel
	case "unexpected-delim":
		overrides[MsgID_CSS_UnexpectedDelim] = logLevel
	case "missing-at-rule-prelude":
		overrides[MsgID_CSS_MissingAtRulePrelude] = logLevel
	case "missing-at-rule-block":
		overrides[MsgID_CSS_MissingAtRuleBlock] = logLevel
	case "bad-declaration":
		overrides[MsgID_CSS_BadDeclaration] = logLevel
	case "invalid-@charset":
		overrides[MsgID_CSS_InvalidAtCharset] = logLevel
	case "invalid-@import":
		overrides[MsgID_CSS_InvalidAtImport] = logLevel
	case "invalid-@layer":
		overrides[MsgID_CSS_InvalidAtLayer] = logLevel
	case "unsupported-@charset":
		overrides[MsgID_CSS_UnsupportedAtCharset] = logLevel
	case "unsupported-@namespace":
		overrides[MsgID_CSS_UnsupportedAtNamespace] = logLevel
	case "reserved-keyframe-name":
		overrides[MsgID_CSS_ReservedKeyframeName] = logLevel
	case "invalid-ranged-feature":
		overrides[MsgID_CSS_InvalidRangedFeature] = logLevel
	case "invalid-calc":
		overrides[MsgID_CSS_InvalidCalc] = logLevel
	case "number-out-of-bounds":
		overrides[MsgID_CSS_NumberOutOfBounds] = logLevel
	case "expected-integer":
		overrides[MsgID_CSS_ExpectedInteger] = logLevel
	case "expected-float":
		overrides[MsgID_CSS_ExpectedFloat] = logLevel
	case "expected-signed":
		overrides[MsgID_CSS_ExpectedSigned] = logLevel
	case "expected-unsigned":
		overrides[MsgID_CSS_ExpectedUnsigned] = logLevel
	case "expected-zero":
		overrides[MsgID_CSS_ExpectedZero] = logLevel
	case "color-hex-wrong-length":
		overrides[MsgID_CSS_ColorHexWrongLength] = logLevel
	case "color-channel-ordering":
		overrides[MsgID_CSS_ColorChannelOrdering] = logLevel
	case "unsupported-css-property":
		overrides[MsgID_CSS_UnsupportedCSSProperty] = logLevel
	case "unsupported-css-nesting":
		overrides[MsgID_CSS_UnsupportedCSSNesting] = logLevel
	case "invalid-selector":
		overrides[MsgID_CSS_InvalidSelector] = logLevel
	default:
		// Ignore invalid entries since this message id may have
		// been renamed/removed since when this code was written
	}
}

func MsgIDToString(id MsgID) string {
	switch id {
	case MsgID_CSS_InvalidEscape:
		return "invalid-escape"
	case MsgID_CSS_UnterminatedString:
		return "unterminated-string"
	case MsgID_CSS_UnterminatedURL:
		return "unterminated-url"
	case MsgID_CSS_UnterminatedComment:
		return "unterminated-comment"
	case MsgID_CSS_CSSSyntaxError:
		return "css-syntax-error"
	case MsgID_CSS_UnexpectedToken:
		return "unexpected-token"
	case MsgID_CSS_UnexpectedIdent:
		return "unexpected-ident"
	case MsgID_CSS_UnexpectedAtRule:
		return "unexpected-at-rule"
	case MsgID_CSS_UnexpectedFunction:
		return "unexpected-function"
	case MsgID_CSS_UnexpectedDimension:
		return "unexpected-dimension"
	case MsgID_CSS_UnexpectedPseudoClass:
		return "unexpected-pseudo-class"
	case MsgID_CSS_UnexpectedPseudoElement:
		return "unexpected-pseudo-element"
	case MsgID_CSS_UnexpectedDelim:
		return "unexpected-delim"
	case MsgID_CSS_MissingAtRulePrelude:
		return "missing-at-rule-prelude"
	case MsgID_CSS_MissingAtRuleBlock:
		return "missing-at-rule-block"
	case MsgID_CSS_BadDeclaration:
		return "bad-declaration"
	case MsgID_CSS_InvalidAtCharset:
		return "invalid-@charset"
	case MsgID_CSS_InvalidAtImport:
		return "invalid-@import"
	case MsgID_CSS_InvalidAtLayer:
		return "invalid-@layer"
	case MsgID_CSS_UnsupportedAtCharset:
		return "unsupported-@charset"
	case MsgID_CSS_UnsupportedAtNamespace:
		return "unsupported-@namespace"
	case MsgID_CSS_ReservedKeyframeName:
		return "reserved-keyframe-name"
	case MsgID_CSS_InvalidRangedFeature:
		return "invalid-ranged-feature"
	case MsgID_CSS_InvalidCalc:
		return "invalid-calc"
	case MsgID_CSS_NumberOutOfBounds:
		return "number-out-of-bounds"
	case MsgID_CSS_ExpectedInteger:
		return "expected-integer"
	case MsgID_CSS_ExpectedFloat:
		return "expected-float"
	case MsgID_CSS_ExpectedSigned:
		return "expected-signed"
	case MsgID_CSS_ExpectedUnsigned:
		return "expected-unsigned"
	case MsgID_CSS_ExpectedZero:
		return "expected-zero"
	case MsgID_CSS_ColorHexWrongLength:
		return "color-hex-wrong-length"
	case MsgID_CSS_ColorChannelOrdering:
		return "color-channel-ordering"
	case MsgID_CSS_UnsupportedCSSProperty:
		return "unsupported-css-property"
	case MsgID_CSS_UnsupportedCSSNesting:
		return "unsupported-css-nesting"
	case MsgID_CSS_InvalidSelector:
		return "invalid-selector"
	}

	return ""
}

// Some message IDs are more diverse internally than externally (in case we
// want to expand the set of them later on). So just map these to the largest
// one arbitrarily since you can't tell the difference externally anyway.
func StringToMaximumMsgID(id string) MsgID {
	overrides := make(map[MsgID]LogLevel)
	maxID := MsgID_None
	StringToMsgIDs(id, LevelInfo, overrides)
	for id := range overrides {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}
