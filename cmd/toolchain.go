package cmd

import (
	"fmt"

	"github.com/cnosuke/mcp-apk-repack/config"
	"github.com/cnosuke/mcp-apk-repack/logger"
	"github.com/cnosuke/mcp-apk-repack/toolchain"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   DefaultConfigPath,
		Usage:   "path to the configuration file",
	}
}

func keystoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "keystore",
			Usage: "path to the keystore file (defaults to the configured keystore)",
		},
		&cli.StringFlag{
			Name:  "storepass",
			Usage: "keystore password (defaults to the configured password)",
		},
		&cli.StringFlag{
			Name:  "alias",
			Usage: "key alias (defaults to the configured alias)",
		},
	}
}

// setup loads the configuration, initializes the logger and creates the
// toolchain. Callers defer logger.Sync after a nil error.
func setup(c *cli.Context) (*config.Config, *toolchain.Toolchain, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration file")
	}

	if err := logger.InitLogger(cfg.Debug, cfg.Log); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize logger")
	}

	tc := toolchain.New(toolchain.Config{
		ApktoolPath:        cfg.Toolchain.ApktoolPath,
		JarsignerPath:      cfg.Toolchain.JarsignerPath,
		ZipalignPath:       cfg.Toolchain.ZipalignPath,
		TimestampAuthority: cfg.Toolchain.TimestampAuthority,
	})

	return cfg, tc, nil
}

// keystoreArgs resolves the keystore parameters from flags, falling back to
// the configuration file.
func keystoreArgs(c *cli.Context, cfg *config.Config) (path, password, alias string) {
	path = c.String("keystore")
	if path == "" {
		path = cfg.Keystore.Path
	}
	password = c.String("storepass")
	if password == "" {
		password = cfg.Keystore.Password
	}
	alias = c.String("alias")
	if alias == "" {
		alias = cfg.Keystore.KeyAlias
	}
	return path, password, alias
}

func printOutput(output string) {
	if output != "" {
		fmt.Println(output)
	}
}

// NewDecodeCommand creates the decode command
func NewDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Aliases:   []string{"d"},
		Usage:     "Decode an apk into an editable source tree",
		ArgsUsage: "<apk>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output directory (defaults to a directory named after the apk)",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "overwrite an existing output directory",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one apk path argument")
			}

			_, tc, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			out, err := tc.Apktool.Decode(c.Args().First(), c.String("output"), c.Bool("force"))
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}

// NewBuildCommand creates the build command
func NewBuildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Aliases:   []string{"b"},
		Usage:     "Rebuild a decoded source tree into an apk",
		ArgsUsage: "<source-dir>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output apk path (defaults to apktool's dist/ location)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one source directory argument")
			}

			_, tc, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			out, err := tc.Apktool.Build(c.Args().First(), c.String("output"))
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}

// NewSignCommand creates the sign command
func NewSignCommand() *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "Sign an apk with the configured keystore",
		ArgsUsage: "<apk>",
		Flags:     append([]cli.Flag{configFlag()}, keystoreFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one apk path argument")
			}

			cfg, tc, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			keystore, password, alias := keystoreArgs(c, cfg)
			out, err := tc.Jarsigner.Sign(c.Args().First(), keystore, password, alias)
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}

// NewResignCommand creates the resign command
func NewResignCommand() *cli.Command {
	return &cli.Command{
		Name:      "resign",
		Usage:     "Strip an existing signature from an apk and sign it again",
		ArgsUsage: "<apk>",
		Flags:     append([]cli.Flag{configFlag()}, keystoreFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one apk path argument")
			}

			cfg, tc, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			keystore, password, alias := keystoreArgs(c, cfg)
			out, err := tc.Jarsigner.Resign(c.Args().First(), keystore, password, alias)
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}

// NewAlignCommand creates the align command
func NewAlignCommand() *cli.Command {
	return &cli.Command{
		Name:      "align",
		Usage:     "Align an apk on 4-byte boundaries",
		ArgsUsage: "<apk>",
		Flags:     []cli.Flag{configFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one apk path argument")
			}

			_, tc, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			out, err := tc.Zipalign.Align(c.Args().First())
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}

// NewRepackCommand creates the repack command
func NewRepackCommand() *cli.Command {
	return &cli.Command{
		Name:      "repack",
		Usage:     "Rebuild, resign and align a decoded source tree in one step",
		ArgsUsage: "<source-dir>",
		Flags: append([]cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "output apk path",
				Required: true,
			},
		}, keystoreFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one source directory argument")
			}

			cfg, tc, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			keystore, password, alias := keystoreArgs(c, cfg)
			out, err := tc.Repack(c.Args().First(), c.String("output"), keystore, password, alias)
			if err != nil {
				return err
			}
			printOutput(out)
			return nil
		},
	}
}
