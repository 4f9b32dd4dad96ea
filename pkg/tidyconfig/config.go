// Copyright 2026 The Yamltidy Authors.
// SPDX-License-Identifier: Apache-2.0

package tidyconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	validator "github.com/go-playground/validator/v10"
	goversion "github.com/hashicorp/go-version"
)

// DefaultEnvPrefix is the prefix of environment variables that override
// options from config files (eg YAMLTIDY_LINE_LENGTH=120).
const DefaultEnvPrefix = "YAMLTIDY"

type SequenceStyle string

const (
	SequenceStyleFlow  SequenceStyle = "flow_style"
	SequenceStyleBlock SequenceStyle = "block_style"
	SequenceStyleKeep  SequenceStyle = "keep_style"
)

// Options is the full set of formatting options. Zero value is not usable;
// start from Default().
type Options struct {
	AllowDuplicateKeys bool `toml:"allow_duplicate_keys"`
	ExplicitStart      bool `toml:"explicit_start"`

	IndentMapping  int `toml:"indent_mapping" validate:"min=1,max=8"`
	IndentOffset   int `toml:"indent_offset" validate:"min=0,max=8"`
	IndentSequence int `toml:"indent_sequence" validate:"min=1,max=16"`
	LineLength     int `toml:"line_length" validate:"min=1"`

	NoneRepresentation string `toml:"none_representation" validate:"omitempty,oneof=~ null Null NULL"`

	PreserveQuotes          bool          `toml:"preserve_quotes"`
	QuoteBasicValues        bool          `toml:"quote_basic_values"`
	QuoteKeysAndBasicValues bool          `toml:"quote_keys_and_basic_values"`
	QuoteRepresentation     string        `toml:"quote_representation" validate:"len=1"`
	SequenceStyle           SequenceStyle `toml:"sequence_style" validate:"oneof=flow_style block_style keep_style"`

	CommentsMinSpacesFromContent int  `toml:"comments_min_spaces_from_content" validate:"min=1"`
	CommentsRequireStartingSpace bool `toml:"comments_require_starting_space"`
	CommentsWhitelines           int  `toml:"comments_whitelines" validate:"min=0"`
	Whitelines                   int  `toml:"whitelines" validate:"min=0"`
	SectionWhitelines            int  `toml:"section_whitelines" validate:"min=0"`

	// RequiredVersion, when set, is a version constraint (eg ">= 0.1")
	// that the running yamltidy binary must satisfy before any file is
	// processed.
	RequiredVersion string `toml:"required_version"`
}

func Default() Options {
	return Options{
		AllowDuplicateKeys:           false,
		ExplicitStart:                true,
		IndentMapping:                2,
		IndentOffset:                 2,
		IndentSequence:               4,
		LineLength:                   80,
		NoneRepresentation:           "",
		PreserveQuotes:               false,
		QuoteBasicValues:             false,
		QuoteKeysAndBasicValues:      false,
		QuoteRepresentation:          "'",
		SequenceStyle:                SequenceStyleFlow,
		CommentsMinSpacesFromContent: 2,
		CommentsRequireStartingSpace: true,
		CommentsWhitelines:           1,
		Whitelines:                   0,
		SectionWhitelines:            0,
	}
}

// Load resolves Options from the given TOML config files and the
// environment. Later files override earlier ones; environment variables
// override all files.
func Load(configFiles []string, envPrefix string) (Options, error) {
	opts := Default()

	for _, path := range configFiles {
		if _, err := toml.DecodeFile(path, &opts); err != nil {
			return Options{}, &ValidationError{fmt.Sprintf("Reading config file '%s': %s", path, err)}
		}
	}

	if envPrefix == "" {
		envPrefix = DefaultEnvPrefix
	}

	err := applyEnv(&opts, envPrefix)
	if err != nil {
		return Options{}, err
	}

	err = opts.Validate()
	if err != nil {
		return Options{}, err
	}

	return opts, nil
}

// Validate checks option types and value ranges. It runs before any file
// is processed.
func (o Options) Validate() error {
	err := validator.New().Struct(o)
	if err != nil {
		return &ValidationError{fmt.Sprintf("Validating options: %s", err)}
	}

	if o.QuoteRepresentation != "'" && o.QuoteRepresentation != `"` {
		return &ValidationError{fmt.Sprintf(
			"Expected quote_representation to be single or double quote, got '%s'", o.QuoteRepresentation)}
	}

	if o.RequiredVersion != "" {
		_, err := goversion.NewConstraint(o.RequiredVersion)
		if err != nil {
			return &ValidationError{fmt.Sprintf("Parsing required_version '%s': %s", o.RequiredVersion, err)}
		}
	}

	return nil
}

// CheckToolVersion verifies the running binary satisfies RequiredVersion.
func (o Options) CheckToolVersion(current string) error {
	if o.RequiredVersion == "" {
		return nil
	}

	constraint, err := goversion.NewConstraint(o.RequiredVersion)
	if err != nil {
		return &ValidationError{fmt.Sprintf("Parsing required_version '%s': %s", o.RequiredVersion, err)}
	}

	curVersion, err := goversion.NewVersion(current)
	if err != nil {
		return &ValidationError{fmt.Sprintf("Parsing tool version '%s': %s", current, err)}
	}

	if !constraint.Check(curVersion) {
		return &ValidationError{fmt.Sprintf(
			"yamltidy version '%s' does not satisfy required_version '%s'", current, o.RequiredVersion)}
	}

	return nil
}

func applyEnv(opts *Options, prefix string) error {
	for _, kv := range os.Environ() {
		key, val, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(key, prefix+"_") {
			continue
		}

		name := strings.ToLower(strings.TrimPrefix(key, prefix+"_"))

		err := opts.set(name, val)
		if err != nil {
			return err
		}
	}
	return nil
}

// set assigns a single option from its config-file name and a raw string
// value, as used for environment variable overrides.
func (o *Options) set(name, val string) error {
	invalid := func(err error) error {
		return &ValidationError{fmt.Sprintf("Parsing option '%s' value '%s': %s", name, val, err)}
	}

	switch name {
	case "allow_duplicate_keys":
		return setBool(&o.AllowDuplicateKeys, val, invalid)
	case "explicit_start":
		return setBool(&o.ExplicitStart, val, invalid)
	case "indent_mapping":
		return setInt(&o.IndentMapping, val, invalid)
	case "indent_offset":
		return setInt(&o.IndentOffset, val, invalid)
	case "indent_sequence":
		return setInt(&o.IndentSequence, val, invalid)
	case "line_length":
		return setInt(&o.LineLength, val, invalid)
	case "none_representation":
		o.NoneRepresentation = val
	case "preserve_quotes":
		return setBool(&o.PreserveQuotes, val, invalid)
	case "quote_basic_values":
		return setBool(&o.QuoteBasicValues, val, invalid)
	case "quote_keys_and_basic_values":
		return setBool(&o.QuoteKeysAndBasicValues, val, invalid)
	case "quote_representation":
		o.QuoteRepresentation = val
	case "sequence_style":
		o.SequenceStyle = SequenceStyle(val)
	case "comments_min_spaces_from_content":
		return setInt(&o.CommentsMinSpacesFromContent, val, invalid)
	case "comments_require_starting_space":
		return setBool(&o.CommentsRequireStartingSpace, val, invalid)
	case "comments_whitelines":
		return setInt(&o.CommentsWhitelines, val, invalid)
	case "whitelines":
		return setInt(&o.Whitelines, val, invalid)
	case "section_whitelines":
		return setInt(&o.SectionWhitelines, val, invalid)
	case "required_version":
		o.RequiredVersion = val
	default:
		return &ValidationError{fmt.Sprintf("Unknown option '%s'", name)}
	}
	return nil
}

func setBool(dst *bool, val string, invalid func(error) error) error {
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return invalid(err)
	}
	*dst = parsed
	return nil
}

func setInt(dst *int, val string, invalid func(error) error) error {
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return invalid(err)
	}
	*dst = parsed
	return nil
}

// ValidationError indicates an invalid option value or config file. It is
// fatal before any file is processed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
