// Package launcher implements the bootstrap sequence for the weather
// dashboard:
//
//  1. resolve the application directory, failing with
//     "Folder not found: <path>" when it is missing
//  2. ask the package manager for the configured Python version
//  3. check for <app>/.venv/bin/python
//  4. if it is missing, create the venv and install the dependency set
//  5. replace the current process with <app>/.venv/bin/python <entry point>
//
// Steps run strictly in order and the first failure aborts the sequence.
// Nothing is retried and a partially created environment is left in place.
// Status inspects the same paths without running steps 4 and 5.
package launcher
