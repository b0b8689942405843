package adapters

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"license-audit/internal/ports"
	"license-audit/internal/types"
)

const (
	configKeyLicenses = "licenses"
	configKeyModules  = "modules"
)

type ConfigFileAdapter struct{}

func NewConfigFileAdapter() ConfigFileAdapter {
	return ConfigFileAdapter{}
}

func (a ConfigFileAdapter) Load(path string) (types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Config{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("allowlist file not found").
				WithCause(err)
		}
		return types.Config{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read allowlist file").
			WithCause(err)
	}
	return parseConfig(data)
}

func (a ConfigFileAdapter) GetOrDefault(path string) (types.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return types.DefaultConfig(), nil
	}
	return a.Load(path)
}

// Write renders both sequences in stored order and replaces path
// atomically, so an interrupted run never leaves a partial file.
func (a ConfigFileAdapter) Write(path string, cfg types.Config) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("allowlist path is empty")
	}
	data, err := renderConfig(cfg)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write allowlist file").
			WithCause(err)
	}
	return nil
}

// parseConfig checks, in order: empty content, the modules sequence, the
// licenses sequence. The first violated rule is reported.
func parseConfig(data []byte) (types.Config, error) {
	if strings.TrimSpace(string(data)) == "" {
		return types.Config{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(types.ConfigEmptyMessage)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Config{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse allowlist yaml").
			WithCause(err)
	}
	root := documentRoot(&doc)
	for _, key := range []string{configKeyModules, configKeyLicenses} {
		if !hasSequence(root, key) {
			return types.Config{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(types.ConfigSchemaMessage(key))
		}
	}
	var cfg types.Config
	if err := root.Decode(&cfg); err != nil {
		return types.Config{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("allowlist entries must be strings").
			WithCause(err)
	}
	if cfg.Licenses == nil {
		cfg.Licenses = []string{}
	}
	if cfg.Modules == nil {
		cfg.Modules = []types.ModuleKey{}
	}
	return cfg, nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

func hasSequence(root *yaml.Node, key string) bool {
	if root == nil || root.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			return root.Content[i+1].Kind == yaml.SequenceNode
		}
	}
	return false
}

func renderConfig(cfg types.Config) ([]byte, error) {
	modules := make([]string, 0, len(cfg.Modules))
	for _, key := range cfg.Modules {
		modules = append(modules, string(key))
	}
	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: configKeyLicenses},
			sequenceNode(cfg.Licenses),
			{Kind: yaml.ScalarNode, Value: configKeyModules},
			sequenceNode(modules),
		},
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode allowlist yaml").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode allowlist yaml").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

// sequenceNode renders an empty list as the inline "[]" token and any
// other list as one dash-prefixed line per entry.
func sequenceNode(values []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(values) == 0 {
		node.Style = yaml.FlowStyle
		return node
	}
	for _, value := range values {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
	}
	return node
}

var _ ports.ConfigStorePort = ConfigFileAdapter{}
