// Command devicesim serves a simulated storage board for local development.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"energy_gauge/internal/logger"
	"energy_gauge/internal/server"
	"energy_gauge/internal/simulator"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func main() {
	viper.SetDefault("SIM_PORT", "8081")
	viper.SetDefault("SIM_TARGET_V", simulator.DefaultTargetV)
	viper.SetDefault("SIM_CAPACITANCE_F", simulator.DefaultCapacitanceF)
	viper.SetDefault("SIM_TICK_MS", 100)
	viper.SetDefault("LOG_LEVEL", logger.InfoLevel)
	viper.AutomaticEnv()

	log := logger.Get(viper.GetString("LOG_LEVEL"))
	gin.SetMode(gin.ReleaseMode)

	board := simulator.NewBoard(viper.GetFloat64("SIM_TARGET_V"), viper.GetFloat64("SIM_CAPACITANCE_F"), time.Now())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go board.Run(ctx, time.Duration(viper.GetInt64("SIM_TICK_MS"))*time.Millisecond)

	srv := &server.Server{}
	go func() {
		port := viper.GetString("SIM_PORT")
		log.Infow("devicesim_listening", "port", port)
		if err := srv.Run(port, board.Handler()); err != nil {
			log.Fatalw("devicesim server failed", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("devicesim shutdown", "err", err)
	}
}
