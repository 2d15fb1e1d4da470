package main

import (
	"os"

	"github.com/RLG-UP/Raytracer-RLG-sub000/cmd"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/log"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		log.New("raytracer").Errorf("%v", err)
		os.Exit(1)
	}
}
