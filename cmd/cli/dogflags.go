package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/dogial/internal/api"
)

// parseDogFlags builds a DogRequest from dog-add arguments. Optional
// attributes are sent only when their flag was given.
func parseDogFlags(args []string) (api.DogRequest, error) {
	fs := flag.NewFlagSet("dog-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	owner := fs.String("owner", "", "owner uuid")
	name := fs.String("name", "", "name")
	breed := fs.String("breed", "", "breed")
	gender := fs.String("gender", "", "gender")
	weight := fs.Float64("weight", 0, "weight, kg")
	age := fs.String("age", "", "age")
	neutered := fs.Bool("neutered", false, "is neutered")
	behavior := fs.String("behavior", "", "behavior notes")
	pedigree := fs.Bool("pedigree", false, "has pedigree")
	if err := fs.Parse(args); err != nil {
		return api.DogRequest{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	if *owner == "" || *name == "" || *breed == "" || *gender == "" {
		return api.DogRequest{}, fmt.Errorf("%w: need -owner, -name, -breed and -gender", errUsage)
	}
	if _, err := uuid.FromString(*owner); err != nil {
		return api.DogRequest{}, fmt.Errorf("bad -owner: %w", err)
	}

	req := api.DogRequest{OwnerID: *owner, Name: *name, Breed: *breed, Gender: *gender}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "weight":
			req.Weight = weight
		case "age":
			req.Age = age
		case "neutered":
			req.IsNeutered = neutered
		case "behavior":
			req.Behavior = behavior
		case "pedigree":
			req.Pedigree = pedigree
		}
	})
	return req, nil
}
