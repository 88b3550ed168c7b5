package main

const briefInstructions = `You are given a JSON payload of preprocessed news messages collected from
Telegram channels. Each message has a source group, optional timestamp, and
cleaned text. Produce a concise news brief of the covered period.

Rules:
- headline: one sentence, no more than 120 characters.
- overview: 3-6 sentences covering the main developments, neutral tone.
- themes: 3-8 short topical labels, most prominent first.
- notable_groups: the source groups that contributed the most substantial
  reporting, by name, most notable first.
- Base everything strictly on the supplied messages. Do not invent events.
- Respond with JSON matching the provided schema and nothing else.`
