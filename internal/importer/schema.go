package importer

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[Kind]string{
	KindIncome:       "schemas/transaction.json",
	KindExpense:      "schemas/transaction.json",
	KindPettyCash:    "schemas/petty_cash.json",
	KindBudget:       "schemas/budget.json",
	KindBalanceSheet: "schemas/balance_sheet_item.json",
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func compileSchemas() {
	compiled = make(map[string]*jsonschema.Schema)
	compiler := jsonschema.NewCompiler()
	for _, name := range schemaFiles {
		if _, ok := compiled[name]; ok {
			continue
		}
		b, err := schemaFS.ReadFile(name)
		if err != nil {
			compileErr = fmt.Errorf("read schema %s: %w", name, err)
			return
		}
		if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema %s: %w", name, err)
			return
		}
		s, err := compiler.Compile(name)
		if err != nil {
			compileErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		compiled[name] = s
	}
}

func recordSchema(kind Kind) (*jsonschema.Schema, error) {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return nil, compileErr
	}
	s, ok := compiled[schemaFiles[kind]]
	if !ok {
		return nil, fmt.Errorf("no record schema for kind %q", kind)
	}
	return s, nil
}

// checkRecord validates doc against the kind's record schema and returns
// one message per violated property.
func checkRecord(kind Kind, doc map[string]any) ([]string, error) {
	s, err := recordSchema(kind)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	err = s.Validate(v)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validate record: %w", err)
	}
	var msgs []string
	for _, leaf := range leaves(ve) {
		field := strings.TrimPrefix(leaf.InstanceLocation, "/")
		if field == "" {
			msgs = append(msgs, leaf.Message)
			continue
		}
		msgs = append(msgs, field+" "+leaf.Message)
	}
	return msgs, nil
}

func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}
