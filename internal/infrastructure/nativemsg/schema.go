package nativemsg

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// requestTypes pairs every message type with the struct it decodes into.
var requestTypes = []struct {
	msgType string
	value   any
}{
	{TypePreroll, &PrerollRequest{}},
	{TypeDownloadStart, &DownloadStartRequest{}},
	{TypeDownloadPause, &ControlRequest{}},
	{TypeDownloadResume, &ControlRequest{}},
	{TypeDownloadCancel, &ControlRequest{}},
	{TypeMove, &MoveRequest{}},
	{TypeChooseFolder, &ChooseFolderRequest{}},
	{TypeStatPath, &StatPathRequest{}},
}

// Schema returns a JSON Schema describing every inbound message.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(FlexInt64(0)):
				return &jsonschema.Schema{OneOf: []*jsonschema.Schema{{Type: "integer"}, {Type: "string", Pattern: `^-?[0-9]+$`}}}
			case reflect.TypeOf(HeaderList(nil)):
				return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/Header"}}
			}
			return nil
		},
	}

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		ID:          "https://github.com/bnema/dtabridge/messages.schema.json",
		Title:       "dtabridge native messages",
		Description: "Requests accepted on stdin; every request gets exactly one reply",
		Definitions: jsonschema.Definitions{},
	}
	header := r.Reflect(&Header{})
	header.Version = ""
	root.Definitions["Header"] = header
	for _, rt := range requestTypes {
		s := r.Reflect(rt.value)
		s.Version = ""
		s.Title = rt.msgType
		root.OneOf = append(root.OneOf, s)
	}
	return root
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
