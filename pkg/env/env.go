// Package env wires a controller to its outputs: the diagnostic line
// writers, the event publisher and the HTTP server.
package env

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	"github.com/robotalks/txtest/pkg/comm"
	"github.com/robotalks/txtest/pkg/comm/mqtt"
	"github.com/robotalks/txtest/pkg/comm/stream"
	"github.com/robotalks/txtest/pkg/comm/websocket"
	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/tx"
	"github.com/robotalks/txtest/pkg/web"
)

// Config provides the options to setup the env.
type Config struct {
	// Device names the transmitter in events and MQTT topics.
	Device string
	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix/
	MQTTBrokerURL string
	// HTTPAddr is the listen address of the HTTP server.
	HTTPAddr string
	// SerialPort receives a copy of the diagnostic lines.
	SerialPort string
	SerialBaud int
	// RecordPath is the file appended with length-prefixed events.
	RecordPath string
	// Quiet suppresses the diagnostic lines on stdout.
	Quiet bool
}

var defaultConfig = Config{
	SerialBaud: 115200,
}

func init() {
	if val := os.Getenv("TXTEST_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.Device = DeviceID()
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Device name")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.HTTPAddr, "http", defaultConfig.HTTPAddr, "HTTP listen address")
	flag.StringVar(&defaultConfig.SerialPort, "serial", defaultConfig.SerialPort, "Serial port receiving diagnostic lines")
	flag.IntVar(&defaultConfig.SerialBaud, "baud", defaultConfig.SerialBaud, "Baud rate of the serial port")
	flag.StringVar(&defaultConfig.RecordPath, "record", defaultConfig.RecordPath, "File to record events")
	flag.BoolVar(&defaultConfig.Quiet, "quiet", defaultConfig.Quiet, "Don't print diagnostic lines on stdout")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is the runtime env of a controller.
type Env struct {
	Config    *Config
	Output    io.Writer
	Publisher *comm.Publisher
	Hub       *websocket.Hub
	Server    *web.Server

	stdout  io.Writer
	closers []io.Closer
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if c.Device == "" {
		return nil, fmt.Errorf("device name must be specified")
	}
	env := &Env{
		Config:    c,
		Publisher: comm.NewPublisher(c.Device),
		stdout:    os.Stdout,
	}
	if err := env.setup(); err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

func (e *Env) setup() error {
	c := e.Config
	var outputs []io.Writer
	if !c.Quiet {
		outputs = append(outputs, e.stdout)
	}
	if c.SerialPort != "" {
		port, err := serial.OpenPort(&serial.Config{Name: c.SerialPort, Baud: c.SerialBaud})
		if err != nil {
			return fmt.Errorf("open serial port %s error: %v", c.SerialPort, err)
		}
		e.closers = append(e.closers, port)
		outputs = append(outputs, port)
		glog.Infof("diagnostic lines to %s@%d", c.SerialPort, c.SerialBaud)
	}
	switch len(outputs) {
	case 0:
		e.Output = ioutil.Discard
	case 1:
		e.Output = outputs[0]
	default:
		e.Output = io.MultiWriter(outputs...)
	}

	if c.MQTTBrokerURL != "" {
		w, err := mqtt.NewWriter(c.MQTTBrokerURL, c.Device)
		if err != nil {
			return fmt.Errorf("create MQTT writer error: %v", err)
		}
		e.Publisher.Add(w)
	}
	if c.RecordPath != "" {
		f, err := os.OpenFile(c.RecordPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open record file error: %v", err)
		}
		e.Publisher.Add(stream.New(f))
	}
	if c.HTTPAddr != "" {
		e.Hub = websocket.NewHub()
		e.Publisher.Add(e.Hub)
		e.Server = web.NewServer(c.HTTPAddr, c.Device)
		e.Server.Events = e.Hub
	}
	return nil
}

// Attach connects the controller to the outputs of the env.
func (e *Env) Attach(ctl *tx.Controller) {
	ctl.Output = e.Output
	if len(e.Publisher.Writers) > 0 {
		ctl.Sink = e.Publisher
	}
	if e.Server != nil {
		e.Server.Source = ctl
	}
}

// AddToLoop adds runners to loop.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Add(e.Publisher)
	if e.Server != nil {
		loop.AddRunnable(e.Server)
	}
}

// Close releases the outputs.
func (e *Env) Close() error {
	var errs fx.AggregatedError
	errs.Add(e.Publisher.Close())
	for _, c := range e.closers {
		errs.Add(c.Close())
	}
	return errs.Aggregate()
}
