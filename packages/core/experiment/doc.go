// Package experiment loads experiment definition files and resolves them
// into effective training configurations.
//
// An experiment file is a YAML document holding a base preset name and a
// sparse set of config overrides. The experiment's name is never stated in
// the file: it is the file's base name up to the first dot, which ties every
// run, log line and artifact directory back to its defining file.
package experiment
