// Package venv creates and provisions the dashboard's Python virtual
// environment.
//
// The environment is considered present when its interpreter exists and is
// executable; nothing else about its contents is inspected. Creation and
// installation are delegated to `python -m venv` and `python -m pip`, and a
// failure part way through leaves whatever those tools produced on disk.
package venv
