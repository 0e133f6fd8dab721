package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/musiguello/logixsim/internal/logging"
	"github.com/musiguello/logixsim/internal/metrics"
	"github.com/musiguello/logixsim/internal/simserver"
	"github.com/musiguello/logixsim/internal/simsession"
	"github.com/musiguello/logixsim/internal/simtag"
	"github.com/prometheus/client_golang/prometheus"
)

// maxResponseSizeDefault is the scratch buffer capacity minus a 64-byte
// allowance for EIP/CPF framing overhead.
const maxResponseSizeDefault = simsession.ScratchBufferSize - 64

func runSimulator(cmd *cobra.Command, args []string) error {
	listen, _ := cmd.Flags().GetString("listen")
	metricsListen, _ := cmd.Flags().GetString("metrics-listen")
	maxResponseSize, _ := cmd.Flags().GetUint16("max-response-size")
	tagsFile, _ := cmd.Flags().GetString("tags-file")
	debug, _ := cmd.Flags().GetBool("debug")

	if maxResponseSize == 0 {
		maxResponseSize = maxResponseSizeDefault
	}

	log, err := logging.NewConsole(debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	tags, err := buildTagTable(tagsFile, args)
	if err != nil {
		return err
	}
	log.Infof("loaded %d tag(s)", tags.Len())

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	metricsSrv := &http.Server{Addr: metricsListen, Handler: metrics.NewMux(reg)}
	go func() {
		log.Infof("metrics/health listening on %s", metricsListen)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics listener stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := simserver.New(tags, maxResponseSize, m, log)
	err = srv.Serve(ctx, listen)
	metricsSrv.Close()
	if err != nil {
		return err
	}

	log.Infof("shutdown complete")
	return nil
}

// buildTagTable layers positional CLI tag definitions over an optional
// YAML catalog loaded from --tags-file, CLI entries winning by name.
func buildTagTable(tagsFile string, cliArgs []string) (*simtag.Table, error) {
	fileTags := simtag.NewTable()
	if tagsFile != "" {
		loaded, err := simtag.LoadCatalogFile(tagsFile)
		if err != nil {
			return nil, err
		}
		fileTags = loaded
	}

	cliTags := simtag.NewTable()
	for _, arg := range cliArgs {
		tag, err := simtag.ParseCLIArg(arg)
		if err != nil {
			return nil, err
		}
		cliTags.Put(tag)
	}

	return simtag.Merge(fileTags, cliTags), nil
}
