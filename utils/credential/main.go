// Command credential prints an auth.users entry for config.yaml.
//
//	go run ./utils/credential -username admin -role Admin
//
// The password is read from CREDENTIAL_PASSWORD so it stays out of shell history.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/RealEstate/RealEstate-Backend/src/config"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"gopkg.in/yaml.v3"
)

func main() {
	username := flag.String("username", "", "login name")
	role := flag.String("role", services.DefaultRole, "role claim")
	iterations := flag.Int("iterations", services.DefaultIterations, "PBKDF2 iterations")
	flag.Parse()

	password := os.Getenv("CREDENTIAL_PASSWORD")
	if *username == "" || password == "" {
		log.Fatal("usage: CREDENTIAL_PASSWORD=... credential -username NAME [-role ROLE] [-iterations N]")
	}

	record, err := services.NewCredential(*username, password, *role, *iterations)
	if err != nil {
		log.Fatalf("failed to build credential: %v", err)
	}

	out := struct {
		Users []config.CredentialConfig `yaml:"users"`
	}{Users: []config.CredentialConfig{record}}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("failed to write credential: %v", err)
	}
}
