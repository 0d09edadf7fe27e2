package diag

// Stable diagnostic codes, grouped by compilation stage: lexical
// (E0001-E0004), parser (E0005-E0012), and semantic, which covers both
// expression analysis and declaration/name resolution and so is not a
// single contiguous block.
const (
	LexNumericOutOfRange Code = "E0001"
	LexBadExponent       Code = "E0002"
	LexUnknownNumber     Code = "E0003"
	LexUnknownCharacter  Code = "E0004"

	ParseMissingVariableInitializer Code = "E0005"
	ParseMissingRightOperand        Code = "E0006"
	ParseMissingSpecifier           Code = "E0007"
	ParseMissingClosingParen        Code = "E0008"
	ParseMissingClosingBrace        Code = "E0009"
	ParseKeywordAsIdentifier        Code = "E0010"
	ParseMalformedNode              Code = "E0011"
	ParseMissingNode                Code = "E0012"

	InvalidCallArguments           Code = "E0013"
	ExpressionIsNotCallable        Code = "E0014"
	UndefinedOperator              Code = "E0015"
	InvalidReferenceAsExpression   Code = "E0016"
	UnknownName                    Code = "E0017"
	NativeMethodWithBody           Code = "E0018"
	NativeConstructorWithBody      Code = "E0019"
	NativeFunctionWithBody         Code = "E0028"
	MethodDefinitionWithoutBody    Code = "E0021"
	ConstructorDefinitionWithoutBody Code = "E0022"
	FunctionDefinitionWithoutBody  Code = "E0023"
	ReferenceMarkerInFunctionDefinition Code = "E0024"
	MissingMainFunction            Code = "E0025"
	MainIsNotFunction              Code = "E0026"
	InvalidMainFunctionSignature   Code = "E0027"
	MissingReturnStatement         Code = "E0020"
	DuplicateFunctionDefinition    Code = "E0030"
	DuplicateMethodDefinition      Code = "E0029"
	DuplicateConstructorDefinition Code = "E0031"
	EntityNameTaken                Code = "E0032"
	CopyConstructorDefinition      Code = "E0033"
	NonTypeExpressionAsCastTarget  Code = "E0034"
	NoTypeConversionFunction       Code = "E0035"
	UnknownObjectMember            Code = "E0036"
	UnknownStaticMemberName        Code = "E0037"
	AmbiguousOverloadedCall        Code = "E0038"
	IncompatibleVariableInitializer Code = "E0039"
	NonPlainVariableWithoutInitializer Code = "E0040"
	ReturnFromConstructor          Code = "E0041"
	IncompatibleReturnType         Code = "E0042"
	ReturnWithoutValue             Code = "E0043"
	InvalidConversionFunctionReturnType Code = "E0044"
	OverreferencedType             Code = "E0045"
	InvalidReferenceAsType         Code = "E0046"
	ReferenceMethodAccessFromNonReference Code = "E0047"
	ThisReferenceOutsideMethod     Code = "E0048"
	DuplicateVariableDefinition    Code = "E0049"
	InvalidConditionType           Code = "E0050"
	NumericLiteralTooSmall         Code = "E0051"
	NumericLiteralTooBig           Code = "E0052"
	UnreachableCode                Code = "E0053"
	AmbiguousConversionCandidates  Code = "E0054"
)

// internalErrorCode marks diagnostics for compiler-internal failures
// (e.g. a cyclic type dependency the backend cannot topologically sort).
// These are never localised and never carry an E-number: they are a
// distinct, non-coded class printed straight to stderr with exit code 2.
const internalErrorCode Code = ""

// Internal builds a non-coded internal-error issue. Callers should reserve
// this for conditions the semantic passes are supposed to have already
// ruled out (a topologically-unsortable type graph, an unresolved symbol
// reaching the backend); a real diagnostic belongs in semantic/ instead.
func Internal(message string) Issue {
	return Issue{Severity: Error, Code: internalErrorCode, Message: message}
}
