//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"gestsense/apds9960"
	"gestsense/core"
	"gestsense/gesture"
	"gestsense/protocol"
)

const (
	// Budget for one session; a hand held over the sensor ends here.
	sessionTimeout = 2 * time.Second

	// Pause between sessions that found nothing.
	idleInterval = 20 * time.Millisecond

	// Set to read sessions only while INT is asserted.
	useInterrupt = true

	debugOutput = false
)

var (
	outputBuffer *protocol.ScratchOutput
	reporter     *protocol.Reporter

	// Debug counters
	reportsSent uint32
	faults      uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	InitDebugUART(debugOutput)

	driver := newI2CDriver()
	core.SetI2CDriver(driver)

	dev := apds9960.New(driver, sensorBus, apds9960.Address)
	if err := dev.Configure(sensorFreq); err != nil {
		halt(err)
	}
	if err := dev.Probe(); err != nil {
		halt(err)
	}
	if err := dev.EnableGesture(useInterrupt); err != nil {
		halt(err)
	}
	sensorInt.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	session, err := gesture.NewSession(dev, gesture.DefaultConfig())
	if err != nil {
		halt(err)
	}

	outputBuffer = protocol.NewScratchOutput()
	reporter = protocol.NewReporter(outputBuffer)
	reporter.SetFlushCallback(func() {
		writeUSB(outputBuffer.Result())
		outputBuffer.Reset()
	})

	for {
		func() {
			// Recover from panics so one bad session does not stop the loop
			defer func() {
				if r := recover(); r != nil {
					faults++
					outputBuffer.Reset()
				}
			}()
			step(session)
		}()
	}
}

// step runs one session and reports anything it found.
func step(session *gesture.Session) {
	drainUSB()
	if usbWasDisconnected {
		// Host is back once it reads again; restart sequence numbers
		usbWasDisconnected = false
		reporter.Reset()
	}

	if useInterrupt && sensorInt.Get() {
		time.Sleep(idleInterval)
		return
	}

	res, err := session.Read(time.Now().Add(sessionTimeout))
	if err != nil {
		faults++
		core.DumpEvents()
	}
	if res.Motion.IsNone() {
		time.Sleep(idleInterval)
		return
	}

	reporter.Send(reportFromResult(res))
	reportsSent++
}

func reportFromResult(res gesture.Result) protocol.Report {
	st := res.State
	return protocol.Report{
		Flags:        uint16(res.Motion.Flags()),
		Records:      uint32(st.TotalRecords),
		SumNearFar:   st.SumNearFar,
		DeltaNearFar: st.DeltaNearFar,
		DirUp:        st.DirUp,
		DirDown:      st.DirDown,
		DirLeft:      st.DirLeft,
		DirRight:     st.DirRight,
	}
}

// halt blinks the LED forever after a setup failure.
func halt(err error) {
	core.DebugPrintln("setup failed: " + err.Error())
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
