package pkg

import "dronedesk"

func AssertNoError(err error) {
	if err != nil {
		dronedesk.Logger.Error().Err(err).Msg("Error occurred that should not have occurred.")
		panic(err)
	}
}
