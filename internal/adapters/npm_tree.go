package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"license-audit/internal/ports"
	"license-audit/internal/shared"
	"license-audit/internal/types"
)

var defaultNPMArgs = []string{"ls", "--all", "--json", "--long"}

// NPMAdapter runs the package manager once and decodes its JSON tree.
type NPMAdapter struct {
	Command string
	Args    []string
}

func NewNPMAdapter(command string, args []string) NPMAdapter {
	if strings.TrimSpace(command) == "" {
		command = "npm"
	}
	if len(args) == 0 {
		args = append([]string(nil), defaultNPMArgs...)
	}
	return NPMAdapter{Command: command, Args: args}
}

func (a NPMAdapter) DependencyTree(ctx context.Context, dir string) (*types.DependencyTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, a.Command, a.Args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if len(bytes.TrimSpace(output)) == 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(types.DependencyTreeMessage).
				WithCause(shared.CommandError(stderr.Bytes(), err))
		}
		// npm exits non-zero for peer and extraneous problems but still
		// prints a complete tree.
		log.Ctx(ctx).Warn().
			Err(err).
			Str("command", a.Command).
			Msg("package manager reported problems")
	}
	log.Ctx(ctx).Debug().Int("bytes", len(output)).Str("dir", dir).Msg("dependency tree received")
	return ParseDependencyTree(output)
}

// ParseDependencyTree decodes package manager JSON output. Children are
// kept in document order, which later drives prompt order.
func ParseDependencyTree(data []byte) (*types.DependencyTree, error) {
	if len(bytes.TrimSpace(data)) == 0 || !gjson.ValidBytes(data) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(types.DependencyTreeMessage)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, malformedTree("root is not an object")
	}
	return decodeNode(root, "")
}

func decodeNode(value gjson.Result, key string) (*types.DependencyTree, error) {
	if !value.IsObject() {
		return nil, malformedTree(fmt.Sprintf("dependency %q is not an object", key))
	}
	node := &types.DependencyTree{Metadata: map[string]string{}}
	var decodeErr error
	value.ForEach(func(field, item gjson.Result) bool {
		name := field.String()
		switch name {
		case "dependencies":
			if !item.IsObject() {
				decodeErr = malformedTree(fmt.Sprintf("dependencies of %q is not an object", key))
				return false
			}
			item.ForEach(func(childKey, childValue gjson.Result) bool {
				child, err := decodeNode(childValue, childKey.String())
				if err != nil {
					decodeErr = err
					return false
				}
				node.Dependencies = append(node.Dependencies, child)
				return true
			})
			return decodeErr == nil
		case "licenses", "license":
			return true
		case "name":
			node.Name = strings.TrimSpace(item.String())
		case "version":
			node.Version = strings.TrimSpace(item.String())
		}
		if item.Type != gjson.JSON {
			node.Metadata[name] = item.String()
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if node.Name == "" {
		node.Name = key
	}
	node.Licenses = licenseOf(value)
	return node, nil
}

// licenseOf prefers the "licenses" field and falls back to "license".
// Legacy array forms are joined into one parenthesised OR expression.
func licenseOf(value gjson.Result) string {
	if licenses := value.Get("licenses"); licenses.Exists() {
		return licenseString(licenses)
	}
	return licenseString(value.Get("license"))
}

func licenseString(value gjson.Result) string {
	switch {
	case value.IsArray():
		var parts []string
		for _, item := range value.Array() {
			if part := licenseString(item); part != "" {
				parts = append(parts, part)
			}
		}
		switch len(parts) {
		case 0:
			return ""
		case 1:
			return parts[0]
		default:
			return "(" + strings.Join(parts, " OR ") + ")"
		}
	case value.IsObject():
		return strings.TrimSpace(value.Get("type").String())
	default:
		return strings.TrimSpace(value.String())
	}
}

func malformedTree(detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("malformed dependency tree: " + detail)
}

var _ ports.PackageManagerPort = NPMAdapter{}
