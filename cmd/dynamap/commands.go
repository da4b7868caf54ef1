package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "dynamap").
		WithSynopsis("dynamap [opts] command [file]").
		WithDescription("dynamap converts documents to and from DynamoDB attribute values.").
		WithOpts(opts...).
		WithSubs(
			EncodeCommand(cfg),
			DecodeCommand(cfg))
}

func EncodeCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("encode").
		WithAliases("e", "enc").
		WithSynopsis("encode [file]").
		WithDescription("encode a JSON or YAML document as a DynamoDB JSON item").
		WithRun(func(cc *cli.Context, args []string) error {
			return runEncode(cfg, cc, args)
		})
}

func DecodeCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("decode").
		WithAliases("d", "dec").
		WithSynopsis("decode [file]").
		WithDescription("decode a DynamoDB JSON item back to a plain document").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDecode(cfg, cc, args)
		})
}
