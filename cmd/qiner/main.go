// Command qiner runs the mining core against a coordinator: it loads
// configuration, decodes the operator identity, searches for qualifying
// nonces, and reports them over a retrying TCP connection.
package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/wk101/qiner-go/internal/config"
	"github.com/wk101/qiner-go/internal/identity"
	"github.com/wk101/qiner-go/internal/logging"
	"github.com/wk101/qiner-go/internal/metrics"
	"github.com/wk101/qiner-go/internal/mining"
	"github.com/wk101/qiner-go/internal/randsource"
	"github.com/wk101/qiner-go/internal/wire"
)

func main() {
	app := &cli.App{
		Name:  "qiner",
		Usage: "search for qualifying nonces and report them to a coordinator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to an alternate .env file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "zerolog level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logging.New(os.Stderr, c.String("log-level"))

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		log.Error().Err(err).Msg("configuration failed")
		return err
	}

	pub, err := identity.Decode(cfg.Identity)
	if err != nil {
		log.Error().Err(err).Str("identity", cfg.Identity).Msg("identity parse failed")
		return err
	}

	seed := seedFromBytes(cfg.Seed)
	source := randsource.NewHardware()

	log.Info().
		Bool("rdrand", randsource.HasRDRAND()).
		Bool("rdseed", randsource.HasRDSEED()).
		Int("workers", cfg.ThreadCount).
		Msg("starting miner")

	m := mining.New(seed, pub, cfg.ThreadCount, cfg.SolutionThreshold, source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("shutting down")
		cancel()
	}()

	go m.Run(ctx)

	reporter := metrics.NewReporter(m, log, 10*time.Second)
	go reporter.Run(ctx)

	addr := net.JoinHostPort(cfg.ServerHost, strconv.Itoa(cfg.ServerPort))
	sender := wire.NewSender(addr, log)
	defer sender.Close()

	sendTick := time.NewTicker(time.Second)
	defer sendTick.Stop()

	var pending []wire.Packet
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sendTick.C:
			pending = drainAndSend(ctx, m, pub, cfg.VersionMinor, source, sender, pending, log)
		}
	}
}

// drainAndSend empties the Miner's found queue, builds a broadcast packet
// per nonce, and sends them back to back after any packets still pending
// from an earlier tick. Packets that fail to build are skipped and logged.
// On a send failure every packet of this batch is returned, so the caller
// passes it back in as pending on the next tick; on success it returns nil.
func drainAndSend(ctx context.Context, m *mining.Miner, destPub mining.PublicKey, versionMinor byte, source randsource.Source, sender *wire.Sender, pending []wire.Packet, log zerolog.Logger) []wire.Packet {
	nonces := m.Drain()
	if len(nonces) == 0 && len(pending) == 0 {
		return nil
	}

	packets := pending
	for _, nonce := range nonces {
		p, err := wire.Build(destPub, nonce, versionMinor, source)
		if err != nil {
			log.Error().Err(err).Msg("failed to build solution packet")
			continue
		}
		packets = append(packets, p)
	}

	if err := sender.Send(ctx, packets); err != nil {
		log.Warn().Err(err).Int("packets", len(packets)).Msg("failed to send solution packets, will retry next tick")
		return packets
	}
	return nil
}

func seedFromBytes(b [32]byte) mining.Seed {
	var seed mining.Seed
	for i := range seed {
		seed[i] = binary.LittleEndian.Uint64(b[i*8 : i*8+8])
	}
	return seed
}
