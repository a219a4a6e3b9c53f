package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/codelab-tools/labgen/internal/profile"
)

func storeFrom(c *cli.Context) *profile.Store {
	return profile.NewStore(c.String("profiles-dir"))
}

func profilesListCommand(c *cli.Context) error {
	store := storeFrom(c)
	names, err := store.List()
	if err != nil {
		return err
	}

	fmt.Println("Available profiles:")
	for _, name := range names {
		prof, err := store.Load(name)
		if err != nil {
			return err
		}
		fmt.Printf("  - %s (%s)\n", name, prof.DisplayName)
	}
	return nil
}

func profilesShowCommand(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		name = "default"
	}

	prof, err := storeFrom(c).Load(name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("Profile %s:\n%s\n", name, data)
	return nil
}

func profilesCreateCommand(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("usage: labgen profiles create <name>")
	}
	if name == "default" {
		return errors.New("the default profile is built in and cannot be overwritten")
	}

	prof := profile.Default()
	prof.Name = name
	prof.DisplayName = name
	if err := storeFrom(c).Save(name, prof); err != nil {
		return err
	}

	fmt.Printf("Profile '%s' created.\n", name)
	return nil
}

func profilesDeleteCommand(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("usage: labgen profiles delete <name>")
	}

	deleted, err := storeFrom(c).Delete(name)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("Profile '%s' was not deleted (not found, or built in).\n", name)
		return nil
	}
	fmt.Printf("Profile '%s' deleted.\n", name)
	return nil
}
