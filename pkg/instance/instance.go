package instance

import "github.com/angelmondragon/labstock-backend/pkg/env"

const defaultID = "local"

// ID identifies this process in logs. Platform dyno names win over the host name.
func ID() string {
	return env.First(defaultID, "LABSTOCK_INSTANCE_ID", "DYNO", "HOSTNAME")
}
