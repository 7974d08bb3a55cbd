package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const fileSchemaURL = "https://todo-web.local/tasks.schema.json"

const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["task"],
    "properties": {
      "task": {"type": "string"},
      "done": {"type": "boolean"}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString(fileSchemaURL, fileSchema)

// decodeFile validates raw file content against the task file schema and decodes it.
func decodeFile(data []byte) ([]Task, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate task file: %w", err)
	}
	var list []Task
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode task file: %w", err)
	}
	return list, nil
}
