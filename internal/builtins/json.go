package builtins

import (
	"strconv"

	"github.com/omthedev001/sansscript/internal/interp"
	"github.com/omthedev001/sansscript/internal/serr"
	"github.com/omthedev001/sansscript/internal/srcpos"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// RegisterJSON seeds the additive `yantravat`/`json_of` JSON bridge
// built-ins (SPEC_FULL.md §3's expansion): encoding a Value tree to JSON
// text and parsing JSON text back into Values, useful for `dhavayati`
// scripts that read or write structured data files.
func RegisterJSON(it *interp.Interpreter) {
	it.Global.Define("yantravat", interp.NewBuiltinFunction("yantravat", []string{"value"}, biToJSON))
	it.Global.Define("json_of", interp.NewBuiltinFunction("json_of", []string{"text"}, biFromJSON))
}

func biToJSON(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("yantravat", args, 1, span); err != nil {
		return nil, err
	}
	text, encErr := encodeJSON(args[0])
	if encErr != nil {
		return nil, serr.NewRuntime("could not encode value as JSON: "+encErr.Error(), span, nil)
	}
	return interp.NewString(text), nil
}

// encodeJSON builds a JSON document for v by repeatedly setting paths
// with sjson, rather than hand-rolling a serializer.
func encodeJSON(v interp.Value) (string, error) {
	var scalar any
	switch val := v.(type) {
	case *interp.Number:
		if val.IsInt {
			scalar = int64(val.Value)
		} else {
			scalar = val.Value
		}
	case *interp.String:
		scalar = val.Value
	case *interp.List:
		doc := "[]"
		var err error
		for i, elem := range val.Elements {
			raw, encErr := encodeJSON(elem)
			if encErr != nil {
				return "", encErr
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(i), raw)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		scalar = v.Repr()
	}
	// A scalar is set under a key of a one-field object and read back
	// raw, since sjson rejects an empty path.
	doc, err := sjson.Set(`{"v":null}`, "v", scalar)
	if err != nil {
		return "", err
	}
	return gjson.Get(doc, "v").Raw, nil
}

func biFromJSON(it *interp.Interpreter, args []interp.Value, span srcpos.Span) (interp.Value, *serr.Error) {
	if err := checkArity("json_of", args, 1, span); err != nil {
		return nil, err
	}
	text, ok := args[0].(*interp.String)
	if !ok {
		return nil, serr.NewRuntime("argument must be a String", span, nil)
	}
	if !gjson.Valid(text.Value) {
		return nil, serr.NewRuntime("invalid JSON text", span, nil)
	}
	return decodeJSON(gjson.Parse(text.Value)), nil
}

// decodeJSON walks a parsed gjson.Result into SansScript Values.
func decodeJSON(r gjson.Result) interp.Value {
	switch r.Type {
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) && !isFloatLiteral(r.Raw) {
			return interp.NewInt(int64(r.Num))
		}
		return interp.NewFloat(r.Num)
	case gjson.String:
		return interp.NewString(r.String())
	case gjson.True:
		return interp.NewInt(1)
	case gjson.False:
		return interp.NewInt(0)
	case gjson.JSON:
		if r.IsArray() {
			var elems []interp.Value
			r.ForEach(func(_, value gjson.Result) bool {
				elems = append(elems, decodeJSON(value))
				return true
			})
			return interp.NewList(elems)
		}
		// Object: flatten to a List of [key, value] pair Lists, since
		// SansScript has no map type (spec.md §3).
		var pairs []interp.Value
		r.ForEach(func(key, value gjson.Result) bool {
			pairs = append(pairs, interp.NewList([]interp.Value{
				interp.NewString(key.String()),
				decodeJSON(value),
			}))
			return true
		})
		return interp.NewList(pairs)
	default:
		return interp.NewNull()
	}
}

func isFloatLiteral(raw string) bool {
	for _, c := range raw {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}
