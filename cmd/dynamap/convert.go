package main

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/dynamap/dynamap/decode"
	"github.com/dynamap/dynamap/encode"
	"github.com/dynamap/dynamap/gomap"
	"github.com/dynamap/dynamap/ir"
	"github.com/dynamap/dynamap/wire"
)

func runEncode(cfg *MainConfig, _ *cli.Context, args []string) error {
	data, err := cfg.input(args)
	if err != nil {
		return err
	}
	var doc any
	if cfg.Y {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	node, err := gomap.ToIR(doc)
	if err != nil {
		return err
	}
	var opts []encode.EncodeOption
	if cfg.Sets {
		opts = append(opts, encode.SetIntent(true))
	}

	var out []byte
	if node.Type == ir.ObjectType {
		item, err := encode.EncodeItem(node, opts...)
		if err != nil {
			return err
		}
		if cfg.Compact {
			out, err = wire.MarshalItem(item)
		} else {
			out, err = wire.MarshalItemIndent(item, "", "  ")
		}
		if err != nil {
			return err
		}
	} else {
		av, err := encode.Encode(node, opts...)
		if err != nil {
			return err
		}
		if cfg.Compact {
			out, err = wire.Marshal(av)
		} else {
			out, err = wire.MarshalIndent(av, "", "  ")
		}
		if err != nil {
			return err
		}
	}
	return cfg.write(out)
}

func runDecode(cfg *MainConfig, _ *cli.Context, args []string) error {
	data, err := cfg.input(args)
	if err != nil {
		return err
	}

	// A document is either a single attribute ({"S": ...}) or an item
	// keyed by attribute names; try the narrower shape first.
	var node *ir.Node
	if av, attrErr := wire.Unmarshal(data); attrErr == nil {
		node, err = decode.Decode(av)
	} else {
		item, itemErr := wire.UnmarshalItem(data)
		if itemErr != nil {
			return fmt.Errorf("parsing input: %w", itemErr)
		}
		node, err = decode.DecodeItem(item)
	}
	if err != nil {
		return err
	}

	var doc any
	if err := gomap.FromIR(node, &doc); err != nil {
		return err
	}

	var out []byte
	switch {
	case cfg.Y:
		out, err = yaml.Marshal(doc)
	case cfg.Compact:
		out, err = json.Marshal(doc)
	default:
		out, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return err
	}
	return cfg.write(out)
}

var tagKeyRe = regexp.MustCompile(`"(S|N|B|BOOL|NULL|M|L|SS|NS|BS)":`)

func (cfg *MainConfig) write(out []byte) error {
	w, closeOut, err := cfg.output()
	if err != nil {
		return err
	}
	if cfg.colorEnabled() {
		tagColor := color.New(color.FgCyan).SprintFunc()
		out = tagKeyRe.ReplaceAllFunc(out, func(m []byte) []byte {
			return []byte(tagColor(string(m)))
		})
	}
	if _, err = w.Write(out); err == nil {
		_, err = io.WriteString(w, "\n")
	}
	// a failed close on a file destination is a failed write
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}
