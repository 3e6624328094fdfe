package config

var MustRegister = mustRegister
