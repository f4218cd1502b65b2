package env

import (
	"github.com/plantwall/irrigation-controller/internal/config"
)

var Cfg *config.Config
