// Package kafka provides the destination-bound transport for the railstream
// contracts.
//
// A Client is a producer or consumer tied to exactly one topic. It carries
// opaque wire bytes; combine it with the contracts serdes to move typed
// records:
//
//	serde := contracts.NewSensorDataSerde(registry)
//	producer, err := kafka.NewClient(kafka.Config{
//	    Brokers:     []string{"localhost:9092"},
//	    Destination: contracts.DestinationSensorData,
//	}, log)
//	if err != nil {
//	    return err
//	}
//	defer producer.Close()
//
//	wire, err := serde.Encode(reading)
//	if err != nil {
//	    return err
//	}
//	err = producer.Publish(ctx, []byte(reading.SensorID), wire)
//
// Consuming mirrors producing, with explicit commits:
//
//	consumer, err := kafka.NewClient(kafka.Config{
//	    Brokers:     []string{"localhost:9092"},
//	    Destination: contracts.DestinationSensorData,
//	    GroupID:     "aggregation-worker",
//	    IsConsumer:  true,
//	}, log)
//	if err != nil {
//	    return err
//	}
//	defer consumer.Close()
//
//	msg, err := consumer.Fetch(ctx)
//	if err != nil {
//	    return err
//	}
//	reading, err := serde.Decode(msg.Value)
//	if err != nil {
//	    return err
//	}
//	err = consumer.Commit(ctx, msg)
//
// TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) are supported through
// the corresponding Config sections.
package kafka
