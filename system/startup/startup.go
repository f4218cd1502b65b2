package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/plantwall/irrigation-controller/internal/env"
	"github.com/plantwall/irrigation-controller/internal/model"
)

// WriteBootScript emits a shell script that drives every relay the
// controller owns to its safe state. The script runs from a oneshot systemd
// unit before the controller service, so the pump is guaranteed off between
// power-up and the first control cycle.
func WriteBootScript(pins ...model.GPIOPin) error {
	var lines []string
	lines = append(lines, "#!/bin/bash", "", "# Planting-wall GPIO pin configuration at boot", "")

	for _, pin := range pins {
		drive := "dl"
		if !pin.ActiveHigh {
			drive = "dh"
		}
		lines = append(lines, fmt.Sprintf("pinctrl set %d op pn %s", pin.Number, drive), "")
	}

	contents := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(env.Cfg.BootScriptFilePath, []byte(contents), 0755)
}

func InstallBootService() error {
	unitContents := fmt.Sprintf(`[Unit]
Description=Configure planting-wall GPIO pins at boot
After=network.target

[Service]
Type=oneshot
Environment=PATH=/usr/local/bin:/usr/bin:/bin
ExecStart=%s
RemainAfterExit=true

[Install]
WantedBy=multi-user.target
`, env.Cfg.BootScriptFilePath)

	return os.WriteFile(env.Cfg.OSServicePath, []byte(unitContents), 0644)
}

func InstallControllerService(execPath string) error {
	gpioUnitName := filepath.Base(env.Cfg.OSServicePath)

	unit := fmt.Sprintf(`[Unit]
Description=Planting-wall irrigation controller
After=%s
Requires=%s

[Service]
Type=simple
Environment=PATH=/usr/local/bin:/usr/bin:/bin
ExecStart=%s
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=multi-user.target
`, gpioUnitName, gpioUnitName, execPath)

	return os.WriteFile(env.Cfg.MainServicePath, []byte(unit), 0644)
}

func RunBootScript() error {
	cmd := exec.Command("/bin/bash", env.Cfg.BootScriptFilePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
