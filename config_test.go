package palace

import (
	"testing"

	utils "palace/internal"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := ConfigFromEnv()
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, c.Addr, ":8000")
		utils.AssertEqual(t, c.RedisURL, "")
		utils.AssertDeepEqual(t, c.PlayerNames(), []string{"Jule", "Finn"})
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ADDR", ":9999")
		t.Setenv("PLAYERS", " ada , grace ,")

		c, err := ConfigFromEnv()
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, c.Addr, ":9999")
		utils.AssertDeepEqual(t, c.PlayerNames(), []string{"ada", "grace"})
	})
}
