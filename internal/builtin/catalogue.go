// Package builtin holds the single, shared catalogue of host-provided
// built-in functions (spec.md §4.6): their numeric ids, names, and arity.
//
// Both the semantic checker (whitelisting calls) and the bytecode VM
// (dispatching CALL_BUILTIN) read this one table, so the two can never
// drift out of sync with each other.
package builtin

// Info describes one built-in function's calling shape.
type Info struct {
	ID          int
	Name        string
	MinArgs     int
	MaxArgs     int // -1 means variadic (no upper bound), used by print/printf
}

// Built-in ids, grouped exactly as spec.md §4.6 groups the catalogue.
const (
	Print int = iota
	Printf
	Input
	ReadLine

	Abs
	Sqrt
	Pow
	Sin
	Cos
	Tan
	Floor
	Ceil
	Round
	Max
	Min

	StrLen
	Substr
	ToUpperCase
	ToLowerCase
	StrContains
	StrIndexOf
	StrReplace
	StrTrim
	StrSplit

	ToInt
	ToFloat
	ToString
	ToBool
	TypeOf

	Exit
	Assert
	IsNull
	IsInt
	IsFloat
	IsString
	IsBool

	count
)

// Catalogue is the ordered list of every built-in, indexed by id.
var Catalogue = [count]Info{
	Print:    {Print, "print", 0, -1},
	Printf:   {Printf, "printf", 1, -1},
	Input:    {Input, "input", 0, 1},
	ReadLine: {ReadLine, "readLine", 0, 0},

	Abs:   {Abs, "abs", 1, 1},
	Sqrt:  {Sqrt, "sqrt", 1, 1},
	Pow:   {Pow, "pow", 2, 2},
	Sin:   {Sin, "sin", 1, 1},
	Cos:   {Cos, "cos", 1, 1},
	Tan:   {Tan, "tan", 1, 1},
	Floor: {Floor, "floor", 1, 1},
	Ceil:  {Ceil, "ceil", 1, 1},
	Round: {Round, "round", 1, 1},
	Max:   {Max, "max", 2, 2},
	Min:   {Min, "min", 2, 2},

	StrLen:      {StrLen, "strLen", 1, 1},
	Substr:      {Substr, "substr", 2, 3},
	ToUpperCase: {ToUpperCase, "toUpperCase", 1, 1},
	ToLowerCase: {ToLowerCase, "toLowerCase", 1, 1},
	StrContains: {StrContains, "strContains", 2, 2},
	StrIndexOf:  {StrIndexOf, "strIndexOf", 2, 2},
	StrReplace:  {StrReplace, "strReplace", 3, 3},
	StrTrim:     {StrTrim, "strTrim", 1, 1},
	StrSplit:    {StrSplit, "strSplit", 2, 2},

	ToInt:    {ToInt, "toInt", 1, 1},
	ToFloat:  {ToFloat, "toFloat", 1, 1},
	ToString: {ToString, "toString", 1, 1},
	ToBool:   {ToBool, "toBool", 1, 1},
	TypeOf:   {TypeOf, "typeOf", 1, 1},

	Exit:     {Exit, "exit", 0, 1},
	Assert:   {Assert, "assert", 1, 2},
	IsNull:   {IsNull, "isNull", 1, 1},
	IsInt:    {IsInt, "isInt", 1, 1},
	IsFloat:  {IsFloat, "isFloat", 1, 1},
	IsString: {IsString, "isString", 1, 1},
	IsBool:   {IsBool, "isBool", 1, 1},
}

var byName map[string]*Info

func init() {
	byName = make(map[string]*Info, len(Catalogue))
	for i := range Catalogue {
		byName[Catalogue[i].Name] = &Catalogue[i]
	}
}

// Lookup returns the Info for a built-in name, or ok=false if name isn't
// one of the catalogue's ~30 host functions.
func Lookup(name string) (*Info, bool) {
	info, ok := byName[name]
	return info, ok
}

// ArityOK reports whether argc is a legal argument count for this builtin.
func (i Info) ArityOK(argc int) bool {
	if argc < i.MinArgs {
		return false
	}
	return i.MaxArgs == -1 || argc <= i.MaxArgs
}
