// Command yappxfer sends or receives a single file over a serial port
// using the YAPP protocol.
//
// Send a file:
//
//	yappxfer -port /dev/ttyUSB0 -send report.txt
//
// Wait for an incoming file:
//
//	yappxfer -port /dev/ttyUSB0 -recv downloads/
package main

import (
	"flag"
	"os"

	"github.com/opd-ai/yapp"
	"github.com/opd-ai/yapp/transfer"
	"github.com/opd-ai/yapp/transport"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	port := flag.String("port", "", "serial port device (e.g. /dev/ttyUSB0)")
	baud := flag.Int("baud", transport.DefaultBaudRate, "serial baud rate")
	sendPath := flag.String("send", "", "file to send")
	recvDir := flag.String("recv", "", "directory to receive into")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *port == "" {
		log.Fatal("-port is required")
	}
	if (*sendPath == "") == (*recvDir == "") {
		log.Fatal("exactly one of -send or -recv is required")
	}

	serial, err := transport.NewSerial(transport.SerialConfig{
		Port:     *port,
		BaudRate: *baud,
	})
	if err != nil {
		log.WithError(err).WithField("port", *port).Fatal("Failed to open serial port")
	}

	opts := yapp.NewOptions()
	opts.Transport = serial
	if *recvDir != "" {
		opts.DownloadDir = *recvDir
	}

	engine, err := yapp.New(opts)
	if err != nil {
		log.WithError(err).Fatal("Failed to create engine")
	}
	defer engine.Kill()

	engine.OnEvent(func(kind transfer.EventKind, message string) {
		entry := log.WithField("kind", kind.String())
		if kind == transfer.EventError {
			entry.Warn(message)
		} else {
			entry.Info(message)
		}
	})
	engine.OnProgress(func(transferred, total uint64) {
		log.WithFields(logrus.Fields{
			"transferred": transferred,
			"total":       total,
		}).Info("Progress")
	})

	done := make(chan bool, 1)
	engine.OnFinished(func(success bool, message string) {
		log.WithField("success", success).Info(message)
		done <- success
	})

	var status string
	if *sendPath != "" {
		status, err = engine.SendFile(*sendPath)
	} else {
		status, err = engine.Receive()
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to start transfer")
	}
	log.Info(status)

	if !<-done {
		os.Exit(1)
	}
}
