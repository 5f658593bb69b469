// Command hjarta-kv reads and writes values in YAML documents by dotted path.
//
//	hjarta-kv [flags] get <doc> <path>
//	hjarta-kv [flags] set <doc> <path> <value>
//	hjarta-kv [flags] delete <doc> <path>
//	hjarta-kv [flags] keys <doc>
//	hjarta-kv [flags] serve
//	hjarta-kv schema
//
// Values given to set are parsed as YAML, so "5" stores an integer and
// "{a: 1}" a mapping. Flags override the matching settings of the -config file.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	kv "github.com/0xalexb/hjarta-kv"
	yamlcodec "github.com/0xalexb/hjarta-kv/codec/yaml"
	"github.com/0xalexb/hjarta-kv/config"
	filefetcher "github.com/0xalexb/hjarta-kv/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-kv/config/parser/yaml"
	"github.com/0xalexb/hjarta-kv/document"
	"github.com/0xalexb/hjarta-kv/listener"
	"github.com/0xalexb/hjarta-kv/logging"
	"github.com/0xalexb/hjarta-kv/registry"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"
)

const listenerName = "api"

var (
	errUsage    = errors.New("usage: hjarta-kv [flags] get|set|delete|keys|serve|schema ...")
	errNotFound = errors.New("not found")
)

// settings is the application config file layout.
type settings struct {
	Logging logging.LoggerConfig `yaml:"logging"`
	Storage registry.Config      `yaml:"storage"`
	HTTP    listener.Config      `yaml:"http"`
}

func main() {
	os.Exit(mainExit())
}

func mainExit() int {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hjarta-kv: %v\n", err)

		return 1
	}

	return 0
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("hjarta-kv", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("config", "", "Path to a YAML config file with logging, storage and http sections")
	dataDir := flags.String("data-dir", "", "Directory holding the documents (default \"data\")")
	logLevel := flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logFormat := flags.String("log-format", logging.FormatConsole, "Log format (json, text, console)")
	httpAddr := flags.String("http", "", "Address to serve the HTTP API on (default \"127.0.0.1:8080\")")
	version := flags.Bool("version", false, "Print version and exit")

	err := flags.Parse(args)
	if err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *version {
		fmt.Fprintf(stdout, "hjarta-kv %s (%s)\n", kv.Version, kv.CompiledAt)

		return nil
	}

	cfg, err := loadSettings(*configPath)
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	if set["log-level"] || cfg.Logging.Level == "" {
		cfg.Logging.Level = *logLevel
	}

	if set["log-format"] || cfg.Logging.Format == "" {
		cfg.Logging.Format = *logFormat
	}

	if *dataDir != "" {
		cfg.Storage.BaseDir = *dataDir
	}

	if *httpAddr != "" {
		cfg.HTTP.Address = *httpAddr
	}

	command := flags.Args()
	if len(command) == 0 {
		return errUsage
	}

	if command[0] == "schema" {
		return writeSchema(stdout)
	}

	opts := []kv.Option{
		kv.WithLogLevel(cfg.Logging.Level),
		kv.WithLogFormat(cfg.Logging.Format),
		kv.WithLogOutput(stderr),
		kv.WithDocuments(
			registry.WithBaseDir(cfg.Storage.BaseDir),
			registry.WithExtension(cfg.Storage.Extension),
		),
	}

	if command[0] == "serve" {
		if len(command) != 1 {
			return errUsage
		}

		opts = append(opts, kv.WithHTTPListener(listenerName,
			listener.WithAddress(cfg.HTTP.Address),
			listener.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
			listener.WithRateLimit(cfg.HTTP.RateLimit, cfg.HTTP.Burst),
		))

		app := kv.NewApp(opts...)
		if err := app.Err(); err != nil {
			return fmt.Errorf("building app: %w", err)
		}

		app.Run()

		return nil
	}

	app := kv.NewApp(opts...)

	err = app.Start()
	if err != nil {
		return err
	}

	err = execute(app.Registry(), command, stdout)

	// Stop saves every resolved document.
	stopErr := app.Stop()
	if err != nil {
		return err
	}

	return stopErr
}

// loadSettings reads the config file, leaving absent sections empty.
// An empty path yields empty settings.
func loadSettings(path string) (settings, error) {
	var cfg settings

	if path == "" {
		return cfg, nil
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}

	parser := yamlparser.NewParser()

	_, err = config.Optional(&cfg.Logging, "logging", yamlparser.IsPathNotFound)(parser, fetcher)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	_, err = config.Optional(&cfg.Storage, "storage", yamlparser.IsPathNotFound)(parser, fetcher)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	_, err = config.Optional(&cfg.HTTP, "http", yamlparser.IsPathNotFound)(parser, fetcher)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

// writeSchema prints the JSON Schema of the config file, for editor completion.
func writeSchema(stdout io.Writer) error {
	reflector := jsonschema.Reflector{ //nolint:exhaustruct // defaults are fine
		FieldNameTag:               "yaml",
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		ExpandedStruct:             true,
	}

	schema := reflector.Reflect(&settings{})
	schema.Title = "hjarta-kv configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}

	_, err = fmt.Fprintln(stdout, string(data))
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func execute(reg *registry.Registry, command []string, stdout io.Writer) error {
	name, rest, err := documentArgs(command)
	if err != nil {
		return err
	}

	doc, err := reg.Resolve(name)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", name, err)
	}

	// Only a successful set or delete leaves the document for the flush on stop.
	mutated := false

	defer func() {
		if !mutated {
			reg.Discard(name)
		}
	}()

	if !doc.Loaded() {
		return fmt.Errorf("%s: %w", doc.Location(), document.ErrNotLoaded)
	}

	switch command[0] {
	case "get":
		if len(rest) != 1 {
			return errUsage
		}

		return get(doc, rest[0], stdout)
	case "set":
		if len(rest) != 2 {
			return errUsage
		}

		value, err := yamlcodec.ParseValue([]byte(rest[1]))
		if err != nil {
			return fmt.Errorf("value %q: %w", rest[1], err)
		}

		_, err = doc.Set(rest[0], value)
		mutated = err == nil

		return err //nolint:wrapcheck // already carries the path
	case "delete":
		if len(rest) != 1 {
			return errUsage
		}

		_, err := doc.Delete(rest[0])
		mutated = err == nil

		return err //nolint:wrapcheck // already carries the path
	case "keys":
		if len(rest) != 0 {
			return errUsage
		}

		keys, err := doc.Keys()
		if err != nil {
			return fmt.Errorf("keys of %q: %w", name, err)
		}

		for _, key := range keys {
			fmt.Fprintln(stdout, key)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command[0])
	}
}

func documentArgs(command []string) (string, []string, error) {
	if len(command) < 2 {
		return "", nil, errUsage
	}

	return command[1], command[2:], nil
}

func get(doc *document.Adapter, path string, stdout io.Writer) error {
	value, found, err := doc.Lookup(path)
	if err != nil {
		return err //nolint:wrapcheck // already carries the path
	}

	if !found {
		return fmt.Errorf("get %q: %w", path, errNotFound)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}

	_, err = stdout.Write(data)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
