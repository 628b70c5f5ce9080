/*
Generates the components/schemas section of an OpenAPI document for the
request and response bodies of the HTTP API. Struct and field comments become
descriptions, gin binding tags become constraints.
*/
package main

import (
	"encoding"
	"flag"
	"fmt"
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/httpapi"
	"github.com/semafind/closepairs/models"
	"github.com/semafind/closepairs/render"
	"github.com/semafind/closepairs/session"
	"gopkg.in/yaml.v3"
)

const (
	typeObject  = "object"
	typeArray   = "array"
	typeString  = "string"
	typeNumber  = "number"
	typeInteger = "integer"
	typeBoolean = "boolean"
)

// Encapsulates a JSON schema definition
type schema struct {
	Ref         string            `yaml:"$ref,omitempty"`
	Type        string            `yaml:"type,omitempty"`
	Format      string            `yaml:"format,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Properties  map[string]schema `yaml:"properties,omitempty"`
	Items       *schema           `yaml:"items,omitempty"`
	Required    []string          `yaml:"required,omitempty"`
	Enum        []string          `yaml:"enum,omitempty"`
	Minimum     *float64          `yaml:"minimum,omitempty"`
	Maximum     *float64          `yaml:"maximum,omitempty"`
}

var (
	uuidType          = reflect.TypeOf(uuid.UUID{})
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Enumerated values of types that marshal to text
var textEnums = map[reflect.Type][]string{
	reflect.TypeOf(models.DragIdle): {models.DragIdle.String(), models.DragDragging.String()},
}

type generator struct {
	documentation map[string]string
	schemas       map[string]schema
}

func refTo(t reflect.Type) string {
	return "#/components/schemas/" + t.Name()
}

// typeSchema describes a single Go type, registering named structs as
// separate components.
func (g *generator) typeSchema(t reflect.Type) (schema, error) {
	switch {
	case t == uuidType:
		return schema{Type: typeString, Format: "uuid"}, nil
	case t.Implements(textMarshalerType):
		return schema{Type: typeString, Enum: textEnums[t]}, nil
	}
	switch t.Kind() {
	case reflect.String:
		return schema{Type: typeString}, nil
	case reflect.Bool:
		return schema{Type: typeBoolean}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema{Type: typeInteger}, nil
	case reflect.Float32, reflect.Float64:
		return schema{Type: typeNumber}, nil
	case reflect.Pointer:
		return g.typeSchema(t.Elem())
	case reflect.Slice:
		items, err := g.typeSchema(t.Elem())
		if err != nil {
			return schema{}, err
		}
		return schema{Type: typeArray, Items: &items}, nil
	case reflect.Struct:
		if err := g.structSchema(t); err != nil {
			return schema{}, err
		}
		return schema{Ref: refTo(t)}, nil
	}
	return schema{}, fmt.Errorf("unsupported type %s", t)
}

func (g *generator) structSchema(t reflect.Type) error {
	if _, ok := g.schemas[t.Name()]; ok {
		return nil
	}
	s := schema{
		Type:        typeObject,
		Description: g.documentation[t.Name()],
		Properties:  make(map[string]schema),
	}
	// Reserve the name so recursive references terminate
	g.schemas[t.Name()] = s
	// ---------------------------
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonTag, ok := field.Tag.Lookup("json")
		if !ok {
			return fmt.Errorf("field %s in %s has no json tag", field.Name, t.Name())
		}
		jsonName := strings.Split(jsonTag, ",")[0]
		if jsonName == "-" {
			continue
		}
		fieldSchema, err := g.typeSchema(field.Type)
		if err != nil {
			return fmt.Errorf("field %s in %s: %w", field.Name, t.Name(), err)
		}
		if fieldSchema.Ref == "" {
			fieldSchema.Description = g.documentation[t.Name()+"."+field.Name]
		}
		required, err := applyBindings(&fieldSchema, field.Tag.Get("binding"))
		if err != nil {
			return fmt.Errorf("field %s in %s: %w", field.Name, t.Name(), err)
		}
		if required || (field.Type.Kind() != reflect.Pointer && !strings.Contains(jsonTag, "omitempty")) {
			s.Required = append(s.Required, jsonName)
		}
		s.Properties[jsonName] = fieldSchema
	}
	g.schemas[t.Name()] = s
	return nil
}

// applyBindings maps gin binding constraints, e.g. "required,min=0,max=12".
func applyBindings(s *schema, bindingTag string) (bool, error) {
	required := false
	for _, binding := range strings.Split(bindingTag, ",") {
		name, value, _ := strings.Cut(binding, "=")
		switch name {
		case "":
			continue
		case "required":
			required = true
		case "uuid":
			s.Format = "uuid"
		case "min", "max":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false, fmt.Errorf("%s value %s is not a number", name, value)
			}
			if name == "min" {
				s.Minimum = &v
			} else {
				s.Maximum = &v
			}
		default:
			return false, fmt.Errorf("unsupported binding %s", binding)
		}
	}
	return required, nil
}

// Attempts to extract struct and field documentation from Go source files. This
// is used as description in the JSON schema.
func parseDocumentation(directory string, documentation map[string]string) error {
	fset := token.NewFileSet()
	notTest := func(fi os.FileInfo) bool { return !strings.HasSuffix(fi.Name(), "_test.go") }
	pkgs, err := parser.ParseDir(fset, directory, notTest, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("could not parse %s: %w", directory, err)
	}
	for _, pkg := range pkgs {
		docPkg := doc.New(pkg, "./", doc.AllDecls|doc.PreserveAST)
		for _, t := range docPkg.Types {
			documentation[t.Name] = strings.TrimSpace(t.Doc)
			for _, spec := range t.Decl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}
				for _, field := range structType.Fields.List {
					for _, name := range field.Names {
						documentation[t.Name+"."+name.Name] = strings.TrimSpace(field.Doc.Text())
					}
				}
			}
		}
	}
	return nil
}

func generate(root string, toEncode []any) (map[string]schema, error) {
	g := &generator{
		documentation: make(map[string]string),
		schemas:       make(map[string]schema),
	}
	for _, dir := range []string{"httpapi", "models", "render", "session"} {
		if err := parseDocumentation(root+"/"+dir, g.documentation); err != nil {
			return nil, err
		}
	}
	for _, model := range toEncode {
		if err := g.structSchema(reflect.TypeOf(model)); err != nil {
			return nil, err
		}
	}
	return g.schemas, nil
}

func main() {
	root := flag.String("root", ".", "repository root holding the api packages")
	flag.Parse()
	toEncode := []any{
		httpapi.CatalogResponse{},
		httpapi.PointsResponse{},
		httpapi.SetNRequest{},
		httpapi.WheelRequest{},
		httpapi.PointerRequest{},
		httpapi.ResizeRequest{},
		session.State{},
		render.Scene{},
	}
	schemas, err := generate(*root, toEncode)
	if err != nil {
		log.Fatal().Err(err).Msg("could not generate schemas")
	}
	// ---------------------------
	out := map[string]any{"components": map[string]any{"schemas": schemas}}
	if err := yaml.NewEncoder(os.Stdout).Encode(out); err != nil {
		log.Fatal().Err(err).Msg("could not encode schemas")
	}
}
