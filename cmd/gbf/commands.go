package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y, cbor/c",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "gbf").
		WithSynopsis("gbf [opts] command [opts]").
		WithDescription("gbf is a tool for inspecting GBF irep containers written by ESBMC.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gbfMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			GetCommand(cfg),
			ListCommand(cfg),
			StatCommand(cfg),
			DiffCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-x] [-d depth] [files]").
		WithDescription("decode GBF files and render their trees").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <path> [files]").
		WithDescription("render the node at a path, such as '$[0].type{#location}'").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l").
		WithSynopsis("list [-p] <expr> [files]").
		WithDescription(listDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

const listDescription = `list the paths of nodes matching an expression.

The expression is evaluated on each distinct node with the variables
id, path, depth, nsub, nnamed and ncomments and the functions named(k),
comment(k), has(k), sub(i) and getpath(p). For example

  gbf list 'id == "symbol" && named("identifier") startsWith "c:@F@main"' prog.gbf

With -p the argument is a path that may contain [*] and .., and the
matching nodes are rendered.`

func StatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StatConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Stat, "stat").
		WithAliases("s").
		WithSynopsis("stat [files]").
		WithDescription("show decoding statistics, tree shape and digest").
		WithRun(func(cc *cli.Context, args []string) error {
			return stat(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("di").
		WithOpts(opts...).
		WithSynopsis("diff [-c lines] a b").
		WithDescription("compare two GBF files, exit status 1 if they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
