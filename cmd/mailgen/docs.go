package main

// General API documentation for swaggo. Run `swag init -g cmd/mailgen/docs.go -o docs --parseInternal --parseDependency` to regenerate.
//
// @title           mailgen API
// @version         1.0
// @description     Generates professional email replies and summaries with a pretrained seq2seq model.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
