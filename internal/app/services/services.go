package services

// Services defined in this package:
// - AuthService: session issuance and account creation (identity provider)
// - GatePassService: pass lifecycle transitions and department retrieval
// - StudentService: bounded year ledger and department roster
// - ProvisionService: partial-failure-tolerant bulk account creation
// - TeacherService: administrative staff directory
