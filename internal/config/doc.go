// Package config holds environment-driven settings and the fixed editorial
// constants of the content engine: categories, personas, day-of-week topic
// weights, streak limits and scoring criteria.
//
// A .env file in the working directory is loaded if present; real environment
// variables take precedence.
package config
