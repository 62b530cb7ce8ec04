/*
Package ports defines the driven ports (interfaces) of the simulator.

These interfaces decouple scenario execution from the places finished
reports are kept, so the same simulator can write to memory, disk or Redis.

# Key Interfaces

  - ReportStore: persists finished scenario reports by ID.
  - Locker: serialises work on a scenario key across replicas.
  - Simulator: runs a scenario and returns its report; consumed by the
    HTTP and MCP adapters.
*/
package ports
