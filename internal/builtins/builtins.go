// Package builtins seeds the SansScript global environment with the
// native functions spec.md §4.5 defines: I/O, type predicates, list
// mutation, and sub-script evaluation.
package builtins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/omthedev001/sansscript/internal/interp"
	"github.com/omthedev001/sansscript/internal/serr"
	"github.com/omthedev001/sansscript/internal/srcpos"
	"github.com/omthedev001/sansscript/internal/translit"
)

// spelling pairs a builtin's plain romanization with its
// diacritic-preserving one; both are bound to the same BuiltinFunction
// value (spec.md §4.5).
type spelling struct {
	plain, diacritic string
}

// Register seeds every built-in named in spec.md §4.5 into interp's
// global environment, under both spellings.
func Register(it *interp.Interpreter) {
	defs := []struct {
		names    spelling
		argNames []string
		impl     func(*interp.Interpreter, []interp.Value, srcpos.Span) (interp.Value, *serr.Error)
	}{
		{spelling{"print", "mudrayati"}, []string{"value"}, biPrint},
		{spelling{"mudrayati_punah", "mudrayati_punaH"}, []string{"value"}, biPrintRet},
		{spelling{"praveshah", "praveshaH"}, nil, biInput},
		{spelling{"anka_praveshah", "aMka_praveshaH"}, nil, biInputInt},
		{spelling{"shuddha", "shuddha"}, nil, biClear},
		{spelling{"ankah_va", "aMkaH_vA"}, []string{"value"}, biIsNumber},
		{spelling{"sutram_va", "sUtram_vA"}, []string{"value"}, biIsString},
		{spelling{"suchih_va", "sUchiH_vA"}, []string{"value"}, biIsList},
		{spelling{"karyah_va", "kAryaH_vA"}, []string{"value"}, biIsFunction},
		{spelling{"samyojayati", "saMyojayati"}, []string{"list", "value"}, biAppend},
		{spelling{"apanayati", "apanayati"}, []string{"list", "index"}, biPop},
		{spelling{"prasarayati", "prasArayati"}, []string{"list1", "list2"}, biExtend},
		{spelling{"parimanam", "parimANam"}, []string{"list"}, biLen},
		{spelling{"dhavayati", "dhAvayati"}, []string{"path"}, biRun},
		{spelling{"run", "run"}, []string{"path"}, biRun},
	}

	for _, d := range defs {
		fn := interp.NewBuiltinFunction(d.names.plain, d.argNames, d.impl)
		it.Global.Define(d.names.plain, fn)
		if d.names.diacritic != d.names.plain {
			it.Global.Define(d.names.diacritic, fn)
		}
	}
}

func arityError(name string, want, got int, span srcpos.Span) *serr.Error {
	word := "too many"
	if got < want {
		word = "too few"
	}
	return serr.NewRuntime(fmt.Sprintf("%s arguments passed into '%s'", word, name), span, nil)
}

func checkArity(name string, args []interp.Value, want int, span srcpos.Span) *serr.Error {
	if len(args) != want {
		return arityError(name, want, len(args), span)
	}
	return nil
}

func biPrint(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("mudrayati", args, 1, span); err != nil {
		return nil, err
	}
	it.Host.Write(args[0].Repr())
	return interp.NewNull(), nil
}

func biPrintRet(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("mudrayati_punah", args, 1, span); err != nil {
		return nil, err
	}
	return interp.NewString(args[0].Repr()), nil
}

func biInput(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("praveshah", args, 0, span); err != nil {
		return nil, err
	}
	line, ioErr := it.Host.ReadLine()
	if ioErr != nil {
		return nil, serr.NewRuntime("input read failed: "+ioErr.Error(), span, nil)
	}
	return interp.NewString(line), nil
}

func biInputInt(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("anka_praveshah", args, 0, span); err != nil {
		return nil, err
	}
	line, ioErr := it.Host.ReadLine()
	if ioErr != nil {
		return nil, serr.NewRuntime("input read failed: "+ioErr.Error(), span, nil)
	}
	n, parseErr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if parseErr != nil {
		return nil, serr.NewRuntime("'"+line+"' is not a valid integer", span, nil)
	}
	return interp.NewInt(n), nil
}

func biClear(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("shuddha", args, 0, span); err != nil {
		return nil, err
	}
	it.Host.Clear()
	return interp.NewNull(), nil
}

func biIsNumber(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("ankah_va", args, 1, span); err != nil {
		return nil, err
	}
	return typePredicate(args[0], "Number"), nil
}

func biIsString(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("sutram_va", args, 1, span); err != nil {
		return nil, err
	}
	return typePredicate(args[0], "String"), nil
}

func biIsList(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("suchih_va", args, 1, span); err != nil {
		return nil, err
	}
	return typePredicate(args[0], "List"), nil
}

func biIsFunction(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("karyah_va", args, 1, span); err != nil {
		return nil, err
	}
	t := args[0].Type()
	return boolNum(t == "Function" || t == "BuiltinFunction"), nil
}

func typePredicate(v interp.Value, want string) interp.Value {
	return boolNum(v.Type() == want)
}

func boolNum(b bool) interp.Value {
	if b {
		return interp.NewInt(1)
	}
	return interp.NewInt(0)
}

func biAppend(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("samyojayati", args, 2, span); err != nil {
		return nil, err
	}
	list, ok := args[0].(*interp.List)
	if !ok {
		return nil, serr.NewRuntime("first argument must be a List", span, nil)
	}
	list.Elements = append(list.Elements, args[1])
	return interp.NewNull(), nil
}

func biPop(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("apanayati", args, 2, span); err != nil {
		return nil, err
	}
	list, ok := args[0].(*interp.List)
	if !ok {
		return nil, serr.NewRuntime("first argument must be a List", span, nil)
	}
	idxNum, ok := args[1].(*interp.Number)
	if !ok {
		return nil, serr.NewRuntime("second argument must be a Number", span, nil)
	}
	idx := int(idxNum.Value)
	if idx < 0 || idx >= len(list.Elements) {
		return nil, serr.NewRuntime("avaidh sthanam (index out of range)", span, nil)
	}
	popped := list.Elements[idx]
	list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
	return popped, nil
}

func biExtend(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("prasarayati", args, 2, span); err != nil {
		return nil, err
	}
	list1, ok := args[0].(*interp.List)
	if !ok {
		return nil, serr.NewRuntime("first argument must be a List", span, nil)
	}
	list2, ok := args[1].(*interp.List)
	if !ok {
		return nil, serr.NewRuntime("second argument must be a List", span, nil)
	}
	list1.Elements = append(list1.Elements, list2.Elements...)
	return interp.NewNull(), nil
}

func biLen(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("parimanam", args, 1, span); err != nil {
		return nil, err
	}
	list, ok := args[0].(*interp.List)
	if !ok {
		return nil, serr.NewRuntime("argument must be a List", span, nil)
	}
	return interp.NewInt(int64(len(list.Elements))), nil
}

func biRun(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("dhavayati", args, 1, span); err != nil {
		return nil, err
	}
	pathVal, ok := args[0].(*interp.String)
	if !ok {
		return nil, serr.NewRuntime("argument must be a String path", span, nil)
	}

	source, ioErr := it.Host.ReadFile(pathVal.Value)
	if ioErr != nil {
		return nil, serr.NewRuntime("failed to load script '"+pathVal.Value+"': "+ioErr.Error(), span, nil)
	}

	if _, runErr := it.Run(pathVal.Value, translit.Normalize(source)); runErr != nil {
		return nil, serr.NewRuntime("failed to finish executing '"+pathVal.Value+"': "+runErr.Error(), span, nil)
	}
	return interp.NewNull(), nil
}
