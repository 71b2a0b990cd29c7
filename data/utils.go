package data

import homedir "github.com/mitchellh/go-homedir"

func getHomeDir() (string, error) {
	return homedir.Dir()
}
