package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/sonnyparlin/eccwallet"
	"github.com/sonnyparlin/eccwallet/internal/config"
	"github.com/sonnyparlin/eccwallet/internal/logger"
	"github.com/sonnyparlin/eccwallet/keystore"
)

const demoMessage = "This is my wonderful message."

var errNotVerified = errors.New("signature not verified")

type runner struct {
	log *zap.Logger
}

// newRunner starts with an error-level logger so that failures before the
// Before hook runs, such as a bad --log-level, are still reported.
func newRunner() *runner {
	log, err := logger.Initialize("error")
	if err != nil {
		log = zap.NewNop()
	}
	return &runner{log: log}
}

func newApp(cfg *config.Config) (*cli.App, *runner) {
	r := newRunner()
	app := &cli.App{
		Name:  "eccwallet",
		Usage: "generate secp256k1 keys, sign and verify message digests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "key-dir",
				Usage: "directory holding the key pair",
				Value: cfg.KeyDir,
			},
			&cli.StringFlag{
				Name:  "passphrase",
				Usage: "passphrase protecting the private key on disk",
				Value: cfg.Passphrase,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: cfg.LogLevel,
			},
		},
		Before: func(cctx *cli.Context) error {
			log, err := logger.Initialize(cctx.String("log-level"))
			if err != nil {
				return err
			}
			r.log = log
			return nil
		},
		After: func(cctx *cli.Context) error {
			// Syncing stderr fails on some terminals; nothing to do about it.
			_ = r.log.Sync()
			return nil
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "generate",
			Usage: "create a new key pair and save it in the key directory",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "force",
					Usage: "overwrite an existing key pair",
				},
			},
			Action: r.runGenerate,
		},
		{
			Name:      "hash",
			Usage:     "print the SHA-256 digest of a message",
			ArgsUsage: "<message>",
			Action:    r.runHash,
		},
		{
			Name:  "sign",
			Usage: "hash a message and sign the digest with the stored private key",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "message", Required: true},
			},
			Action: r.runSign,
		},
		{
			Name:  "verify",
			Usage: "verify a signature over the digest of a message",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "message", Required: true},
				&cli.StringFlag{Name: "hex", Usage: "signature as hex", Required: true},
				&cli.IntFlag{Name: "size", Usage: "signature length in bytes", Required: true},
				&cli.StringFlag{Name: "pubkey", Usage: "public key PEM file (defaults to the stored one)"},
			},
			Action: r.runVerify,
		},
		{
			Name:   "address",
			Usage:  "print the Bitcoin and Ethereum addresses of the stored key",
			Action: r.runAddress,
		},
		{
			Name:  "demo",
			Usage: "generate throwaway wallets and walk through hash, sign and verify",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "message", Value: demoMessage},
			},
			Action: r.runDemo,
		},
	}
	return app, r
}

func (r *runner) reportFailure(err error) {
	r.log.Error("command failed", zap.Error(err))
	_ = r.log.Sync()
}

func openStore(cctx *cli.Context) *keystore.Store {
	return keystore.New(cctx.String("key-dir"), cctx.String("passphrase"))
}

func (r *runner) runGenerate(cctx *cli.Context) error {
	store := openStore(cctx)
	if store.Exists() && !cctx.Bool("force") {
		return fmt.Errorf("a key pair already exists in %s, use --force to replace it", store.Dir())
	}
	kp, err := eccwallet.GenerateKeyPair()
	if err != nil {
		return err
	}
	if err := store.Save(kp); err != nil {
		return err
	}
	r.log.Info("key pair generated",
		zap.String("dir", store.Dir()),
		zap.Bool("encrypted", cctx.String("passphrase") != ""))
	fmt.Fprint(cctx.App.Writer, kp.PublicKey)
	return nil
}

func (r *runner) runHash(cctx *cli.Context) error {
	if cctx.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one message argument")
	}
	fmt.Fprintln(cctx.App.Writer, eccwallet.Hash([]byte(cctx.Args().First())))
	return nil
}

func (r *runner) runSign(cctx *cli.Context) error {
	kp, err := openStore(cctx).Load()
	if err != nil {
		return err
	}
	digest := eccwallet.Hash([]byte(cctx.String("message")))
	sig, err := eccwallet.Sign(kp.PrivateKey, digest)
	if err != nil {
		return err
	}
	r.log.Debug("message signed", zap.Stringer("digest", digest), zap.Int("size", sig.Size))
	fmt.Fprintf(cctx.App.Writer, "size: %d\nhex: %s\n", sig.Size, sig.Hex)
	return nil
}

func (r *runner) runVerify(cctx *cli.Context) error {
	var publicKey string
	var err error
	if path := cctx.String("pubkey"); path != "" {
		publicKey, err = keystore.ReadPublicKey(path)
	} else {
		publicKey, err = keystore.ReadPublicKey(openStore(cctx).PublicKeyPath())
	}
	if err != nil {
		return err
	}
	digest := eccwallet.Hash([]byte(cctx.String("message")))
	sig := eccwallet.Signature{Size: cctx.Int("size"), Hex: cctx.String("hex")}
	ok, err := eccwallet.Verify(digest, sig, publicKey)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cctx.App.Writer, "not verified")
		return errNotVerified
	}
	fmt.Fprintln(cctx.App.Writer, "verified")
	return nil
}

func (r *runner) runAddress(cctx *cli.Context) error {
	publicKeyText, err := keystore.ReadPublicKey(openStore(cctx).PublicKeyPath())
	if err != nil {
		return err
	}
	publicKey, err := eccwallet.ParsePublicKeyPEM(publicKeyText)
	if err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "bitcoin: %s\nethereum: %s\n",
		publicKey.BitcoinAddress(), publicKey.EthereumAddress())
	return nil
}

func (r *runner) runDemo(cctx *cli.Context) error {
	w := cctx.App.Writer
	wallet, err := eccwallet.NewWallet()
	if err != nil {
		return err
	}
	kp := wallet.KeyPair()
	fmt.Fprintln(w, kp.PublicKey)
	fmt.Fprintln(w, kp.PrivateKey)
	fmt.Fprintln(w, "=======================================")

	data := cctx.String("message")
	digest := eccwallet.Hash([]byte(data))
	fmt.Fprintf(w, "Data to be hashed: %s\n", data)
	fmt.Fprintf(w, "Hashed data to be signed: %s\n\n", digest)

	sig, err := wallet.Sign(digest)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Signature (%d bytes) converted to hex:\n%s\n\n", sig.Size, sig.Hex)

	fmt.Fprintln(w, "Attempting to decode and verify signature:")
	ok, err := wallet.Verify(digest, sig)
	if err != nil {
		return err
	}
	printResult(cctx, ok)

	other, err := eccwallet.NewWallet()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Verifying with another wallet's public key:")
	ok, err = eccwallet.Verify(digest, sig, other.PublicKey())
	if err != nil {
		return err
	}
	printResult(cctx, ok)
	return nil
}

func printResult(cctx *cli.Context, ok bool) {
	if ok {
		fmt.Fprintln(cctx.App.Writer, "Result: Verified!")
	} else {
		fmt.Fprintln(cctx.App.Writer, "Result: Not verified")
	}
}
