// File: flight-configuration/example/main.go
package main

import (
	"fmt"
	"os"

	configuration "github.com/openflighthpc/flight-configuration"
)

func main() {
	reg := configuration.NewRegistry().
		MustDeclare(configuration.AttributeSpec{
			Name: "bind_address", Env: true, Default: "0.0.0.0",
		}).
		MustDeclare(configuration.AttributeSpec{
			Name: "port", Env: true, Required: true, Transform: configuration.ToInt,
		}).
		MustDeclare(configuration.AttributeSpec{
			Name: "log_level", Env: true, Default: "info",
		}).
		MustDeclare(configuration.AttributeSpec{
			Name: "public_url", Env: true,
			Default: func(in *configuration.Instance) any {
				host, _ := in.String("bind_address")
				port, _ := in.Int64("port")
				return fmt.Sprintf("http://%s:%d", host, port)
			},
		})

	loader := configuration.NewLoader(reg).
		WithEnvPrefix("EXAMPLE").
		WithEnvFile(".env").
		WithFiles("example.local.yaml", "example.yaml")

	inst, err := loader.Load()
	for _, rec := range loader.Diagnostics().Drain() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", rec.Level, rec.Message)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration is invalid:")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(inst.Debug())
}
