package diag

import "github.com/psenchanka/colang/internal/source"

// The functions below are the one sanctioned way to build an Issue: each
// pins a stable Code to the arguments its message actually needs, so a
// caller can never accidentally mismatch a code and a template. Where a
// message names a kind of symbol, the noun is rendered through Describe
// rather than spelled into the template, so each locale's table carries
// the word once, in every grammatical form its sentences need.

// describeFor renders term in the case the locale's template slot wants:
// English picks an article form, the Slavic locales a declined case.
func describeFor(locale Locale, term Term, enCase, slavicCase Case) string {
	if locale == BE || locale == RU {
		return Describe(locale, term, slavicCase)
	}
	return Describe(locale, term, enCase)
}

func NumericOutOfRange(locale Locale, span source.Span, literal string) Issue {
	return Issue{Severity: Error, Code: LexNumericOutOfRange, Span: span, Message: render(locale, LexNumericOutOfRange, literal)}
}

func BadExponent(locale Locale, span source.Span, literal string) Issue {
	return Issue{Severity: Error, Code: LexBadExponent, Span: span, Message: render(locale, LexBadExponent, literal)}
}

func UnknownNumber(locale Locale, span source.Span, literal string) Issue {
	return Issue{Severity: Error, Code: LexUnknownNumber, Span: span, Message: render(locale, LexUnknownNumber, literal)}
}

func UnknownCharacter(locale Locale, span source.Span, ch string) Issue {
	return Issue{Severity: Error, Code: LexUnknownCharacter, Span: span, Message: render(locale, LexUnknownCharacter, ch)}
}

func MissingVariableInitializer(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: ParseMissingVariableInitializer, Span: span, Message: render(locale, ParseMissingVariableInitializer)}
}

func MissingRightOperand(locale Locale, span source.Span, op string) Issue {
	return Issue{Severity: Error, Code: ParseMissingRightOperand, Span: span, Message: render(locale, ParseMissingRightOperand, op)}
}

func MissingSpecifier(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: ParseMissingSpecifier, Span: span, Message: render(locale, ParseMissingSpecifier)}
}

func MissingClosingParen(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: ParseMissingClosingParen, Span: span, Message: render(locale, ParseMissingClosingParen)}
}

func MissingClosingBrace(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: ParseMissingClosingBrace, Span: span, Message: render(locale, ParseMissingClosingBrace)}
}

func KeywordAsIdentifier(locale Locale, span source.Span, keyword string) Issue {
	return Issue{Severity: Error, Code: ParseKeywordAsIdentifier, Span: span, Message: render(locale, ParseKeywordAsIdentifier, keyword)}
}

func MalformedNode(locale Locale, span source.Span, what string) Issue {
	return Issue{Severity: Error, Code: ParseMalformedNode, Span: span, Message: render(locale, ParseMalformedNode, what)}
}

func MissingNode(locale Locale, span source.Span, what string) Issue {
	return Issue{Severity: Error, Code: ParseMissingNode, Span: span, Message: render(locale, ParseMissingNode, what)}
}

func CallArgumentsInvalid(locale Locale, span source.Span, name, argList string) Issue {
	return Issue{Severity: Error, Code: InvalidCallArguments, Span: span, Message: render(locale, InvalidCallArguments, name, argList)}
}

func NotCallable(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: ExpressionIsNotCallable, Span: span, Message: render(locale, ExpressionIsNotCallable, name)}
}

func OperatorUndefined(locale Locale, span source.Span, op, typeName string) Issue {
	return Issue{Severity: Error, Code: UndefinedOperator, Span: span, Message: render(locale, UndefinedOperator, op, typeName)}
}

func NotAnExpression(locale Locale, span source.Span, name string, term Term) Issue {
	kind := describeFor(locale, term, Indefinite, Accusative)
	return Issue{Severity: Error, Code: InvalidReferenceAsExpression, Span: span, Message: render(locale, InvalidReferenceAsExpression, name, kind)}
}

func NameUnknown(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: UnknownName, Span: span, Message: render(locale, UnknownName, name)}
}

func NativeMethodHasBody(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: NativeMethodWithBody, Span: span, Message: render(locale, NativeMethodWithBody, name)}
}

func NativeConstructorHasBody(locale Locale, span source.Span, typeName string) Issue {
	return Issue{Severity: Error, Code: NativeConstructorWithBody, Span: span, Message: render(locale, NativeConstructorWithBody, typeName)}
}

func NativeFunctionHasBody(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: NativeFunctionWithBody, Span: span, Message: render(locale, NativeFunctionWithBody, name)}
}

func MethodMissingBody(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: MethodDefinitionWithoutBody, Span: span, Message: render(locale, MethodDefinitionWithoutBody, name)}
}

func ConstructorMissingBody(locale Locale, span source.Span, typeName string) Issue {
	return Issue{Severity: Error, Code: ConstructorDefinitionWithoutBody, Span: span, Message: render(locale, ConstructorDefinitionWithoutBody, typeName)}
}

func FunctionMissingBody(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: FunctionDefinitionWithoutBody, Span: span, Message: render(locale, FunctionDefinitionWithoutBody, name)}
}

func ReferenceMarkerInFunction(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: ReferenceMarkerInFunctionDefinition, Span: span, Message: render(locale, ReferenceMarkerInFunctionDefinition)}
}

func MainMissing(locale Locale) Issue {
	return Issue{Severity: Error, Code: MissingMainFunction, Message: render(locale, MissingMainFunction)}
}

func MainNotAFunction(locale Locale, span source.Span) Issue {
	kind := describeFor(locale, TermFunction, Indefinite, Nominative)
	return Issue{Severity: Error, Code: MainIsNotFunction, Span: span, Message: render(locale, MainIsNotFunction, kind)}
}

func MainSignatureInvalid(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: InvalidMainFunctionSignature, Span: span, Message: render(locale, InvalidMainFunctionSignature)}
}

func ReturnStatementMissing(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: MissingReturnStatement, Span: span, Message: render(locale, MissingReturnStatement, name)}
}

func FunctionAlreadyDefined(locale Locale, span source.Span, name string, first source.Span) Issue {
	kind := describeFor(locale, TermFunction, NoDeterminer, Genitive)
	return Issue{
		Severity: Error, Code: DuplicateFunctionDefinition, Span: span,
		Message: render(locale, DuplicateFunctionDefinition, kind, name),
		Notes:   []Note{SpanNote(first, firstDefinitionNote(locale))},
	}
}

func MethodAlreadyDefined(locale Locale, span source.Span, name, typeName string, first source.Span) Issue {
	kind := describeFor(locale, TermMethod, NoDeterminer, Genitive)
	return Issue{
		Severity: Error, Code: DuplicateMethodDefinition, Span: span,
		Message: render(locale, DuplicateMethodDefinition, kind, name, typeName),
		Notes:   []Note{SpanNote(first, firstDefinitionNote(locale))},
	}
}

func ConstructorAlreadyDefined(locale Locale, span source.Span, typeName string, first source.Span) Issue {
	kind := describeFor(locale, TermConstructor, Indefinite, Genitive)
	return Issue{
		Severity: Error, Code: DuplicateConstructorDefinition, Span: span,
		Message: render(locale, DuplicateConstructorDefinition, kind, typeName),
		Notes:   []Note{SpanNote(first, firstDefinitionNote(locale))},
	}
}

// NameAlreadyTaken reports a name collision in a namespace; existing is
// the kind of the symbol that got there first, named in the message so
// "taken by a function" and "taken by a type" read differently.
func NameAlreadyTaken(locale Locale, span source.Span, name string, existing Term, first source.Span) Issue {
	kind := describeFor(locale, existing, Indefinite, Instrumental)
	return Issue{
		Severity: Error, Code: EntityNameTaken, Span: span,
		Message: render(locale, EntityNameTaken, name, kind),
		Notes:   []Note{SpanNote(first, firstDefinitionNote(locale))},
	}
}

func CopyConstructorNotAllowed(locale Locale, span source.Span, typeName, argType string) Issue {
	return Issue{Severity: Error, Code: CopyConstructorDefinition, Span: span, Message: render(locale, CopyConstructorDefinition, typeName, argType)}
}

func CastTargetNotAType(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: NonTypeExpressionAsCastTarget, Span: span, Message: render(locale, NonTypeExpressionAsCastTarget, name)}
}

func NoConversionFunction(locale Locale, span source.Span, toType string) Issue {
	return Issue{Severity: Error, Code: NoTypeConversionFunction, Span: span, Message: render(locale, NoTypeConversionFunction, toType)}
}

func ObjectMemberUnknown(locale Locale, span source.Span, typeName, member string) Issue {
	kind := describeFor(locale, TermType, Definite, Genitive)
	return Issue{Severity: Error, Code: UnknownObjectMember, Span: span, Message: render(locale, UnknownObjectMember, kind, typeName, member)}
}

func StaticMemberUnknown(locale Locale, span source.Span, typeName, member string) Issue {
	kind := describeFor(locale, TermType, Definite, Genitive)
	return Issue{Severity: Error, Code: UnknownStaticMemberName, Span: span, Message: render(locale, UnknownStaticMemberName, kind, typeName, member)}
}

func AmbiguousCall(locale Locale, span source.Span, name string, candidates []Note) Issue {
	return Issue{Severity: Error, Code: AmbiguousOverloadedCall, Span: span, Message: render(locale, AmbiguousOverloadedCall, name), Notes: candidates}
}

func IncompatibleInitializer(locale Locale, span source.Span, varType, exprType string) Issue {
	return Issue{Severity: Error, Code: IncompatibleVariableInitializer, Span: span, Message: render(locale, IncompatibleVariableInitializer, varType, exprType)}
}

func NonPlainVariableNeedsInitializer(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: NonPlainVariableWithoutInitializer, Span: span, Message: render(locale, NonPlainVariableWithoutInitializer, name)}
}

func ConstructorReturnsValue(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: ReturnFromConstructor, Span: span, Message: render(locale, ReturnFromConstructor)}
}

func ReturnTypeIncompatible(locale Locale, span source.Span, want, got string) Issue {
	return Issue{Severity: Error, Code: IncompatibleReturnType, Span: span, Message: render(locale, IncompatibleReturnType, want, got)}
}

func ReturnMissingValue(locale Locale, span source.Span, want string) Issue {
	return Issue{Severity: Error, Code: ReturnWithoutValue, Span: span, Message: render(locale, ReturnWithoutValue, want)}
}

func ConversionFunctionReturnTypeInvalid(locale Locale, span source.Span, typeName, want string) Issue {
	return Issue{Severity: Error, Code: InvalidConversionFunctionReturnType, Span: span, Message: render(locale, InvalidConversionFunctionReturnType, typeName, want)}
}

func TypeOverreferenced(locale Locale, span source.Span, typeName string) Issue {
	return Issue{Severity: Error, Code: OverreferencedType, Span: span, Message: render(locale, OverreferencedType, typeName)}
}

func NotAType(locale Locale, span source.Span, name string) Issue {
	return Issue{Severity: Error, Code: InvalidReferenceAsType, Span: span, Message: render(locale, InvalidReferenceAsType, name)}
}

func MemberNeedsReference(locale Locale, span source.Span, member string) Issue {
	return Issue{Severity: Error, Code: ReferenceMethodAccessFromNonReference, Span: span, Message: render(locale, ReferenceMethodAccessFromNonReference, member)}
}

func ThisOutsideMethod(locale Locale, span source.Span) Issue {
	return Issue{Severity: Error, Code: ThisReferenceOutsideMethod, Span: span, Message: render(locale, ThisReferenceOutsideMethod)}
}

func VariableAlreadyDefined(locale Locale, span source.Span, name string, first source.Span) Issue {
	return Issue{
		Severity: Error, Code: DuplicateVariableDefinition, Span: span,
		Message: render(locale, DuplicateVariableDefinition, name),
		Notes:   []Note{SpanNote(first, firstDefinitionNote(locale))},
	}
}

// ConditionNotBool names the construct whose condition failed ("if" or
// "while") so the two read differently in the output.
func ConditionNotBool(locale Locale, span source.Span, construct, typeName string) Issue {
	return Issue{Severity: Error, Code: InvalidConditionType, Span: span, Message: render(locale, InvalidConditionType, construct, typeName)}
}

func LiteralTooSmall(locale Locale, span source.Span, literal, typeName string) Issue {
	return Issue{Severity: Error, Code: NumericLiteralTooSmall, Span: span, Message: render(locale, NumericLiteralTooSmall, literal, typeName)}
}

func LiteralTooBig(locale Locale, span source.Span, literal, typeName string) Issue {
	return Issue{Severity: Error, Code: NumericLiteralTooBig, Span: span, Message: render(locale, NumericLiteralTooBig, literal, typeName)}
}

func CodeUnreachable(locale Locale, span source.Span) Issue {
	return Issue{Severity: Warning, Code: UnreachableCode, Span: span, Message: render(locale, UnreachableCode)}
}

func ConversionAmbiguous(locale Locale, span source.Span, typeName string) Issue {
	return Issue{Severity: Error, Code: AmbiguousConversionCandidates, Span: span, Message: render(locale, AmbiguousConversionCandidates, typeName)}
}

// firstDefinitionNote renders the short note attached to "already defined"
// diagnostics, pointing back at the first (winning) definition.
func firstDefinitionNote(locale Locale) string {
	switch locale {
	case BE:
		return "першае вызначэнне тут"
	case RU:
		return "первое определение здесь"
	default:
		return "first defined here"
	}
}
