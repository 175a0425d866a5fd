package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"bond-pricer-sol/internal/config"
	"bond-pricer-sol/internal/pkg/logger"
	"bond-pricer-sol/internal/service"
	"bond-pricer-sol/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

var configFile = flag.String("f", "etc/pricer.yaml", "the config file")

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			code = 2
		}
	}()

	flag.Parse()

	var c config.PricerConfig
	conf.MustLoad(*configFile, &c)
	if err := c.Validate(); err != nil {
		logx.Errorf("invalid config %s: %v", *configFile, err)
		return 2
	}

	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		logx.Errorf("logger init failed: %v", err)
		return 2
	}
	defer logger.Sync()

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		logger.Errorf("service context init failed: %v", err)
		return 2
	}
	defer serviceContext.Close()

	instruments, err := c.ToInstruments()
	if err != nil {
		logger.Errorf("load instruments failed: %v", err)
		return 2
	}
	bondPriceService, err := service.NewBondPriceService(serviceContext.Assembler, serviceContext.Reporter, service.BondPriceServiceOption{
		Instruments: instruments,
		FailFast:    c.FailFast,
	})
	if err != nil {
		logger.Errorf("bond price service init failed: %v", err)
		return 2
	}

	// SIGINT / SIGTERM 取消正在进行的读取
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("Starting bond pricer: %d instruments, fail_fast=%v", len(instruments), c.FailFast)
	outcomes, err := bondPriceService.Run(ctx)
	if err != nil {
		logger.Errorf("定价中止: %v", err)
		return 1
	}
	if service.CountSucceeded(outcomes) < len(outcomes) {
		return 1
	}
	return 0
}
